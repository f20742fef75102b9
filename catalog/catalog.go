// Package catalog holds the fixed set of dyes the rest of the service
// computes against. The catalog is loaded once (from the embedded data
// file or a synced data directory) and is read-only afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dye-atelier/colorspace"
)

//go:embed dyes.json
var dataFS embed.FS

// Dye is one fixed, named color item with its metadata. RGB and HSV are
// derived from Hex at load time and are views of the same underlying
// value; they are never set independently.
type Dye struct {
	ID          int             `json:"id"`
	ExternalID  int             `json:"externalId"`
	Name        string          `json:"name"`
	Hex         string          `json:"hex"`
	RGB         colorspace.RGB  `json:"rgb"`
	HSV         colorspace.HSV  `json:"hsv"`
	Category    string          `json:"category"`
	Acquisition string          `json:"acquisition"`
	Cost        int             `json:"cost"`
	Metallic    bool            `json:"metallic"`
	Pastel      bool            `json:"pastel"`
	Dark        bool            `json:"dark"`
	Cosmic      bool            `json:"cosmic"`
}

// dyeRecord is the on-disk form; color representations other than hex are
// recomputed on load so the three views can never disagree.
type dyeRecord struct {
	ID          int    `json:"id"`
	ExternalID  int    `json:"externalId"`
	Name        string `json:"name"`
	Hex         string `json:"hex"`
	Category    string `json:"category"`
	Acquisition string `json:"acquisition"`
	Cost        int    `json:"cost"`
	Metallic    bool   `json:"metallic"`
	Pastel      bool   `json:"pastel"`
	Dark        bool   `json:"dark"`
	Cosmic      bool   `json:"cosmic"`
}

// Catalog is the in-memory dye index. All lookups preserve the insertion
// order of the data source.
type Catalog struct {
	dyes       []Dye
	byID       map[int]*Dye
	categories []string
}

// Load builds a Catalog from the embedded dye data.
func Load() (*Catalog, error) {
	data, err := dataFS.ReadFile("dyes.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dye data: %w", err)
	}
	return Parse(data)
}

// LoadFile builds a Catalog from a data file on disk, falling back to the
// embedded data when the file does not exist. Used by the catalog sync
// flow, which drops updated data files into a local directory.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load()
		}
		return nil, fmt.Errorf("failed to read dye data file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Catalog from raw JSON dye data.
func Parse(data []byte) (*Catalog, error) {
	var records []dyeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dye data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dye data contains no entries")
	}

	c := &Catalog{
		dyes: make([]Dye, 0, len(records)),
		byID: make(map[int]*Dye, len(records)),
	}
	seenCategories := make(map[string]bool)

	for _, rec := range records {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("dye %q has invalid id %d", rec.Name, rec.ID)
		}
		if _, exists := c.byID[rec.ID]; exists {
			return nil, fmt.Errorf("duplicate dye id %d", rec.ID)
		}

		rgb := colorspace.HexToRGB(rec.Hex)
		dye := Dye{
			ID:          rec.ID,
			ExternalID:  rec.ExternalID,
			Name:        rec.Name,
			Hex:         rgb.Hex(), // canonical uppercase form
			RGB:         rgb,
			HSV:         colorspace.RGBToHSV(rgb.R, rgb.G, rgb.B),
			Category:    rec.Category,
			Acquisition: rec.Acquisition,
			Cost:        rec.Cost,
			Metallic:    rec.Metallic,
			Pastel:      rec.Pastel,
			Dark:        rec.Dark,
			Cosmic:      rec.Cosmic,
		}
		c.dyes = append(c.dyes, dye)
		c.byID[rec.ID] = &c.dyes[len(c.dyes)-1]

		if !seenCategories[dye.Category] {
			seenCategories[dye.Category] = true
			c.categories = append(c.categories, dye.Category)
		}
	}

	return c, nil
}

// All returns every dye in catalog order.
func (c *Catalog) All() []Dye {
	return c.dyes
}

// Len returns the number of dyes in the catalog.
func (c *Catalog) Len() int {
	return len(c.dyes)
}

// ByID returns the dye with the given id, or false if it does not exist.
func (c *Catalog) ByID(id int) (*Dye, bool) {
	dye, ok := c.byID[id]
	return dye, ok
}

// ByCategory returns all dyes whose category equals the argument
// (case-sensitive), preserving catalog order.
func (c *Catalog) ByCategory(category string) []Dye {
	var result []Dye
	for _, dye := range c.dyes {
		if dye.Category == category {
			result = append(result, dye)
		}
	}
	return result
}

// Categories returns the distinct category names in first-seen order.
func (c *Catalog) Categories() []string {
	return c.categories
}

// Summary returns a short description of the catalog, for startup logs.
func (c *Catalog) Summary() string {
	return fmt.Sprintf("%d dyes in %d categories (%s)",
		len(c.dyes), len(c.categories), strings.Join(c.categories, ", "))
}
