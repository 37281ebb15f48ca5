package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	docgenHTTP "docgen-srv/internal/docgen/delivery/http"
	docgenUsecase "docgen-srv/internal/docgen/usecase"
	"docgen-srv/internal/middleware"
)

func (srv *HTTPServer) setupDocgenDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	uc := docgenUsecase.New(srv.converter, srv.stamper, srv.previewer, srv.storage, srv.l, docgenUsecase.Config{
		TemplatePath: srv.config.Docgen.TemplatePath,
		ReportsDir:   srv.config.Docgen.ReportsDir,
		PreviewsDir:  srv.config.Docgen.PreviewsDir,
		MaxWorkers:   srv.config.Docgen.MaxWorkers,
		Bucket:       srv.config.MinIO.Bucket,
	})

	handler := docgenHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Docgen domain registered")
	return nil
}
