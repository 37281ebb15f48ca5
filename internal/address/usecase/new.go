package usecase

import (
	"docgen-srv/internal/address"
	"docgen-srv/internal/address/repository"
	"docgen-srv/pkg/log"
)

type implUseCase struct {
	repo repository.PostgresRepository
	l    log.Logger
}

// New creates a new address UseCase implementation.
func New(repo repository.PostgresRepository, l log.Logger) address.UseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
