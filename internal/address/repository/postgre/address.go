package postgre

import (
	"context"
	"fmt"
)

const listAddressesQuery = `
	SELECT DISTINCT address
	FROM addresses
	WHERE address IS NOT NULL
	  AND address != ''
	ORDER BY address`

func (r *implRepository) ListAddresses(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listAddressesQuery)
	if err != nil {
		r.l.Errorf(ctx, "address.repository.postgre.ListAddresses: query failed: %v", err)
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
