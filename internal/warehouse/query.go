package warehouse

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultFraudQuery flags source IPs with heavy click volume
// concentrated on few ads — the basic coordinated-fraud shape the
// synthetic rings imprint.
const DefaultFraudQuery = `
SELECT
    ip_address,
    COUNT(*)              AS clicks,
    COUNT(DISTINCT ad_id) AS distinct_ads,
    MIN(click_time)       AS first_click,
    MAX(click_time)       AS last_click
FROM clean.raw_clicks
GROUP BY ip_address
HAVING COUNT(*) >= 50 AND COUNT(DISTINCT ad_id) <= 3
ORDER BY clicks DESC
LIMIT 100;
`

// FraudSummary runs the built-in coordinated-fraud query against the
// clean click view.
func (w *Warehouse) FraudSummary(ctx context.Context) (*QueryResult, error) {
	return w.RunQuery(ctx, DefaultFraudQuery)
}

// QueryResult is a generic tabular result ready for table or CSV
// rendering.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// RunQuery executes an arbitrary read query and stringifies the result.
func (w *Warehouse) RunQuery(ctx context.Context, query string) (*QueryResult, error) {
	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	res := &QueryResult{Columns: cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return res, nil
}
