package httpserver

import (
	"errors"

	"docgen-srv/config"
	"docgen-srv/internal/docgen"
	"docgen-srv/pkg/convert"
	"docgen-srv/pkg/discord"
	"docgen-srv/pkg/log"
	"docgen-srv/pkg/minio"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	config *config.Config

	// Pipeline dependencies
	converter convert.Converter
	stamper   docgen.Stamper
	previewer docgen.PreviewRenderer
	storage   minio.MinIO // nil when artifact mirroring is disabled

	// Monitoring & Notification Configuration
	discord discord.IDiscord
}

type Config struct {
	// Server Configuration
	Host        string
	Port        int
	Mode        string
	Environment string

	Config *config.Config

	// Pipeline dependencies
	Converter convert.Converter
	Stamper   docgen.Stamper
	Previewer docgen.PreviewRenderer
	Storage   minio.MinIO

	// Monitoring & Notification Configuration
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,
		converter:   cfg.Converter,
		stamper:     cfg.Stamper,
		previewer:   cfg.Previewer,
		storage:     cfg.Storage,
		discord:     cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.converter == nil {
		return errors.New("converter is required")
	}
	if srv.stamper == nil {
		return errors.New("stamper is required")
	}
	if srv.previewer == nil {
		return errors.New("previewer is required")
	}
	// storage and discord are optional

	return nil
}
