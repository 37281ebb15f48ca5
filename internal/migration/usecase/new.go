package usecase

import (
	"database/sql"

	"docgen-srv/internal/migration"
	"docgen-srv/pkg/log"
)

type implUseCase struct {
	source *sql.DB // SQLite
	target *sql.DB // PostgreSQL
	l      log.Logger
	tables []string
}

// New creates a new migration UseCase implementation.
func New(source, target *sql.DB, l log.Logger) migration.UseCase {
	return &implUseCase{
		source: source,
		target: target,
		l:      l,
		tables: migration.Tables,
	}
}
