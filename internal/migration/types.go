package migration

// TableResult reports the outcome of one table transfer.
type TableResult struct {
	Table string
	Rows  int64
	Err   error
}

type MigrateOutput struct {
	Results   []TableResult
	TotalRows int64
}
