package models

import "dye-atelier/catalog"

// MarketListing is the external price API's response for one dye.
type MarketListing struct {
	ItemID       int    `json:"itemId"`
	World        string `json:"world"`
	PricePerUnit int    `json:"pricePerUnit"`
	Quantity     int    `json:"quantity"`
	LastUploaded int64  `json:"lastUploadTime"`
}

// PriceQuote is a market price for a dye as served by this API. Source
// is "live" for a fresh external lookup, "cache" for an in-memory hit,
// and "snapshot" when the external API was unavailable and the most
// recent persisted price was used instead.
type PriceQuote struct {
	DyeID     int    `json:"dyeId"`
	World     string `json:"world"`
	Price     int    `json:"price"`
	Source    string `json:"source"`
	FetchedAt string `json:"fetchedAt"`
}

// PriceSnapshot is a persisted market price observation.
type PriceSnapshot struct {
	DyeID     int    `json:"dyeId"`
	World     string `json:"world"`
	Price     int    `json:"price"`
	FetchedAt string `json:"fetchedAt"`
}

// BoardEntry is one row of the market board: a dye ranked by its color
// distance to the requested target, with its current price attached when
// one could be obtained.
type BoardEntry struct {
	Dye      catalog.Dye `json:"dye"`
	Distance float64     `json:"distance"`
	Quote    *PriceQuote `json:"quote,omitempty"`
}
