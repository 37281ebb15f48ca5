package migration

import "context"

// UseCase copies the legacy SQLite database into PostgreSQL.
type UseCase interface {
	Migrate(ctx context.Context) (MigrateOutput, error)
}

// Tables lists every table to transfer, in dependency order. The set must
// match the backend's ORM models.
var Tables = []string{
	"files",
	"users",
	"reports",
	"requests",
	"addresses",
	"allowed_phones",
	"equipment",
	"inventories",
	"travel_records",
	"equipment_memories",
}
