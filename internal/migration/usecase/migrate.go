package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"docgen-srv/internal/migration"

	"github.com/lib/pq"
)

// Migrate truncates every target table and then copies the tables one by
// one. Truncation is all-or-nothing; per-table copy failures are recorded
// and do not stop the remaining tables.
func (uc *implUseCase) Migrate(ctx context.Context) (migration.MigrateOutput, error) {
	if err := uc.truncateAll(ctx); err != nil {
		uc.l.Errorf(ctx, "migration.usecase.Migrate: truncate failed: %v", err)
		return migration.MigrateOutput{}, err
	}

	out := migration.MigrateOutput{}
	for _, table := range uc.tables {
		rows, err := uc.copyTable(ctx, table)
		if err != nil {
			uc.l.Errorf(ctx, "migration.usecase.Migrate: table %s failed: %v", table, err)
		} else {
			uc.l.Infof(ctx, "migration.usecase.Migrate: table %s: %d rows", table, rows)
		}
		out.Results = append(out.Results, migration.TableResult{Table: table, Rows: rows, Err: err})
		out.TotalRows += rows
	}

	return out, nil
}

// truncateAll clears every target table in one transaction so a partial
// failure never leaves the target half-emptied.
func (uc *implUseCase) truncateAll(ctx context.Context) error {
	tx, err := uc.target.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, table := range uc.tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pq.QuoteIdentifier(table))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return tx.Commit()
}

// copyTable streams all rows of one table through COPY. Column names come
// from the source schema; the target table must have matching columns.
func (uc *implUseCase) copyTable(ctx context.Context, table string) (int64, error) {
	rows, err := uc.source.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("failed to read source table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	tx, err := uc.target.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to prepare COPY: %w", err)
	}

	var count int64
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to scan row: %w", err)
		}

		args := make([]any, len(values))
		for i, v := range values {
			args[i] = normalizeValue(v)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to copy row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return 0, err
	}

	// Flush the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to flush COPY: %w", err)
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	return count, tx.Commit()
}

// normalizeValue maps SQLite scan values onto types pq encodes correctly.
// SQLite hands text columns back as []byte; sending those to pq unchanged
// would encode them as bytea, so valid UTF-8 byte slices become strings.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok && utf8.Valid(b) {
		return string(b)
	}
	return v
}
