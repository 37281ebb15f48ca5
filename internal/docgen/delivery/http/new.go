package http

import (
	"docgen-srv/internal/docgen"
	"docgen-srv/internal/middleware"
	"docgen-srv/pkg/discord"
	"docgen-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      docgen.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc docgen.UseCase, discord discord.IDiscord) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
