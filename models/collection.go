package models

import "dye-atelier/catalog"

// Collection is a saved set of dyes (the favorites feature).
type Collection struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	DyeCount  int    `json:"dyeCount"`
}

// CollectionDetail is a collection with its dyes resolved against the
// catalog, in the order they were added.
type CollectionDetail struct {
	Collection
	Dyes []CollectionDye `json:"dyes"`
}

// CollectionDye is one saved dye inside a collection. Dye is nil when
// the stored id no longer exists in the catalog (stale after a data
// sync); the raw id is still reported.
type CollectionDye struct {
	DyeID    int          `json:"dyeId"`
	Position int          `json:"position"`
	AddedAt  string       `json:"addedAt"`
	Dye      *catalog.Dye `json:"dye,omitempty"`
}

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// AddCollectionDyeRequest is the request body for adding a dye to a
// collection.
type AddCollectionDyeRequest struct {
	DyeID int `json:"dye_id"`
}
