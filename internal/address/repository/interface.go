package repository

import "context"

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	// ListAddresses returns all distinct non-empty technical addresses,
	// sorted ascending.
	ListAddresses(ctx context.Context) ([]string, error)
}
