package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"dye-atelier/db"
	"dye-atelier/models"
)

// PriceRepository persists market price observations so the board can
// fall back to the most recent known price when the external API is down.
type PriceRepository struct{}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository() *PriceRepository {
	return &PriceRepository{}
}

// Ensure PriceRepository implements PriceRepositoryInterface
var _ PriceRepositoryInterface = (*PriceRepository)(nil)

// Record stores one price observation
func (r *PriceRepository) Record(ctx context.Context, snapshot models.PriceSnapshot) error {
	query := `
		INSERT INTO price_snapshots (dye_id, world, price, fetched_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := db.DB.ExecContext(ctx, query, snapshot.DyeID, snapshot.World, snapshot.Price); err != nil {
		log.Printf("❌ Error recording price snapshot: %v", err)
		return fmt.Errorf("failed to record price snapshot: %w", err)
	}
	return nil
}

// LatestForDye returns the most recent snapshot for a dye on a world, or
// nil when none has ever been recorded.
func (r *PriceRepository) LatestForDye(ctx context.Context, dyeID int, world string) (*models.PriceSnapshot, error) {
	query := `
		SELECT dye_id, world, price, fetched_at
		FROM price_snapshots
		WHERE dye_id = $1 AND world = $2
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var s models.PriceSnapshot
	err := db.DB.QueryRowContext(ctx, query, dyeID, world).Scan(&s.DyeID, &s.World, &s.Price, &s.FetchedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest price snapshot: %w", err)
	}
	return &s, nil
}
