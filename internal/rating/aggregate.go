// AngelaMos | 2026
// aggregate.go

package rating

import (
	"context"
	"fmt"
	"math"

	"github.com/angelamos/ratehub/internal/core"
)

// RecomputeStoreAggregates rewrites a store's derived rating statistics from
// the live ratings rows. It must run in the same transaction as the rating
// mutation that invalidated them; no other code path writes average_rating or
// total_ratings. Aggregates are always recomputed from scratch, never
// incremented, so a retried or partially applied mutation cannot drift them.
func RecomputeStoreAggregates(
	ctx context.Context,
	q core.DBTX,
	storeID string,
) error {
	var stats struct {
		Count   int     `db:"cnt"`
		Average float64 `db:"avg"`
	}

	statsQuery := `
		SELECT COUNT(*) AS cnt, COALESCE(AVG(rating), 0)::float8 AS avg
		FROM ratings
		WHERE store_id = $1`

	if err := q.GetContext(ctx, &stats, statsQuery, storeID); err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	updateQuery := `
		UPDATE stores
		SET total_ratings = $2, average_rating = $3, updated_at = NOW()
		WHERE id = $1`

	_, err := q.ExecContext(
		ctx,
		updateQuery,
		storeID,
		stats.Count,
		RoundAverage(stats.Average),
	)
	if err != nil {
		return fmt.Errorf("update store aggregates: %w", err)
	}

	return nil
}

// RoundAverage rounds a mean rating to one decimal place, the precision the
// stores table stores and the API exposes.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}
