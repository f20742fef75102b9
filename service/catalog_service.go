package service

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"dye-atelier/catalog"
	"dye-atelier/match"
)

// catalogDataFile is the file name the sync flow writes dye data under.
const catalogDataFile = "dyes.json"

// CatalogService owns the current catalog snapshot and its finder.
// Reload builds a fresh pair and swaps both atomically; callers that
// grabbed the previous snapshot keep computing against a consistent
// catalog.
type CatalogService struct {
	dataDir string

	mu      sync.RWMutex
	catalog *catalog.Catalog
	finder  *match.Finder
}

// NewCatalogService loads the initial catalog, preferring a previously
// synced data file over the embedded copy.
func NewCatalogService(dataDir string) (*CatalogService, error) {
	c, err := catalog.LoadFile(filepath.Join(dataDir, catalogDataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Printf("🎨 Catalog loaded: %s", c.Summary())
	return &CatalogService{
		dataDir: dataDir,
		catalog: c,
		finder:  match.NewFinder(c),
	}, nil
}

// Current returns the current catalog and finder as one consistent pair.
func (s *CatalogService) Current() (*catalog.Catalog, *match.Finder) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.finder
}

// Catalog returns only the current catalog snapshot.
func (s *CatalogService) Catalog() *catalog.Catalog {
	c, _ := s.Current()
	return c
}

// Finder returns only the current finder snapshot.
func (s *CatalogService) Finder() *match.Finder {
	_, f := s.Current()
	return f
}

// Reload rebuilds the catalog from the data directory (falling back to
// the embedded data) and swaps it in.
func (s *CatalogService) Reload() error {
	c, err := catalog.LoadFile(filepath.Join(s.dataDir, catalogDataFile))
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	finder := match.NewFinder(c)

	s.mu.Lock()
	s.catalog = c
	s.finder = finder
	s.mu.Unlock()

	log.Printf("🔁 Catalog reloaded: %s", c.Summary())
	return nil
}
