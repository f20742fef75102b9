package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"dye-atelier/db"
	"dye-atelier/models"
)

// CollectionRepository handles database operations for dye collections
type CollectionRepository struct{}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{}
}

// Ensure CollectionRepository implements CollectionRepositoryInterface
var _ CollectionRepositoryInterface = (*CollectionRepository)(nil)

// Create inserts a new, empty collection
func (r *CollectionRepository) Create(ctx context.Context, name string) (*models.Collection, error) {
	log.Printf("📁 Create collection: name=%s", name)

	query := `
		INSERT INTO collections (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, name, created_at
	`

	var collection models.Collection
	err := db.DB.QueryRowContext(ctx, query, name).Scan(
		&collection.ID,
		&collection.Name,
		&collection.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ Error creating collection: %v", err)
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✓ Collection created: id=%d", collection.ID)
	return &collection, nil
}

// List returns all collections with their dye counts, newest first
func (r *CollectionRepository) List(ctx context.Context) ([]models.Collection, error) {
	query := `
		SELECT c.id, c.name, c.created_at, COUNT(cd.dye_id) AS dye_count
		FROM collections c
		LEFT JOIN collection_dyes cd ON cd.collection_id = c.id
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error listing collections: %v", err)
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.DyeCount); err != nil {
			log.Printf("❌ Error scanning collection: %v", err)
			continue
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}

	log.Printf("✓ Listed %d collections", len(collections))
	return collections, nil
}

// GetByID returns one collection with its dyes in insertion order
func (r *CollectionRepository) GetByID(ctx context.Context, id int) (*models.CollectionDetail, error) {
	queryCollection := `
		SELECT id, name, created_at
		FROM collections
		WHERE id = $1
	`

	var detail models.CollectionDetail
	err := db.DB.QueryRowContext(ctx, queryCollection, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("collection with id %d does not exist", id)
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	queryDyes := `
		SELECT dye_id, position, added_at
		FROM collection_dyes
		WHERE collection_id = $1
		ORDER BY position ASC
	`

	rows, err := db.DB.QueryContext(ctx, queryDyes, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection dyes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cd models.CollectionDye
		if err := rows.Scan(&cd.DyeID, &cd.Position, &cd.AddedAt); err != nil {
			log.Printf("❌ Error scanning collection dye: %v", err)
			continue
		}
		detail.Dyes = append(detail.Dyes, cd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection dyes: %w", err)
	}

	detail.DyeCount = len(detail.Dyes)
	return &detail, nil
}

// Delete removes a collection and its dyes
func (r *CollectionRepository) Delete(ctx context.Context, id int) error {
	log.Printf("🗑  Delete collection: id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_dyes WHERE collection_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete collection dyes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("collection with id %d does not exist", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Collection %d deleted", id)
	return nil
}

// AddDye appends a dye to a collection. Re-adding an existing dye keeps
// its original position.
func (r *CollectionRepository) AddDye(ctx context.Context, collectionID, dyeID int) (*models.CollectionDye, error) {
	log.Printf("🎨 AddDye: collection=%d dye=%d", collectionID, dyeID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Verify the collection exists
	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM collections WHERE id = $1)`, collectionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("collection with id %d does not exist", collectionID)
	}

	// Next position is one past the current maximum
	query := `
		INSERT INTO collection_dyes (collection_id, dye_id, position, added_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM collection_dyes WHERE collection_id = $1),
			NOW())
		ON CONFLICT (collection_id, dye_id) DO UPDATE SET dye_id = EXCLUDED.dye_id
		RETURNING dye_id, position, added_at
	`

	var cd models.CollectionDye
	err = tx.QueryRowContext(ctx, query, collectionID, dyeID).Scan(&cd.DyeID, &cd.Position, &cd.AddedAt)
	if err != nil {
		log.Printf("❌ Error adding dye to collection: %v", err)
		return nil, fmt.Errorf("failed to add dye to collection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Dye %d added to collection %d at position %d", dyeID, collectionID, cd.Position)
	return &cd, nil
}

// RemoveDye removes a dye from a collection
func (r *CollectionRepository) RemoveDye(ctx context.Context, collectionID, dyeID int) error {
	result, err := db.DB.ExecContext(ctx,
		`DELETE FROM collection_dyes WHERE collection_id = $1 AND dye_id = $2`,
		collectionID, dyeID)
	if err != nil {
		return fmt.Errorf("failed to remove dye from collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dye %d is not in collection %d", dyeID, collectionID)
	}

	log.Printf("✓ Dye %d removed from collection %d", dyeID, collectionID)
	return nil
}
