package service

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"dye-atelier/catalog"
)

//go:embed locales/names_de.json
//go:embed locales/names_fr.json
//go:embed locales/names_ja.json
var localeFS embed.FS

// supportedLanguages lists the shipped translation tables. The catalog's
// own names are the source language and need no table.
var supportedLanguages = []string{"de", "fr", "ja"}

// LocaleService resolves localized dye names. Tables are keyed by the
// dye's external id, which is how the upstream data cross-references
// translations.
type LocaleService struct {
	dataDir string

	mu    sync.RWMutex
	names map[string]map[int]string
}

// NewLocaleService loads the embedded translation tables, preferring a
// synced file in dataDir over the embedded copy when one exists.
func NewLocaleService(dataDir string) (*LocaleService, error) {
	s := &LocaleService{dataDir: dataDir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rereads every translation table, picking up files a data sync
// may have written since startup.
func (s *LocaleService) Reload() error {
	names := make(map[string]map[int]string, len(supportedLanguages))

	for _, lang := range supportedLanguages {
		filename := fmt.Sprintf("names_%s.json", lang)

		var data []byte
		var err error
		synced := filepath.Join(s.dataDir, filename)
		if data, err = os.ReadFile(synced); err == nil {
			log.Printf("🌐 Locale %s: using synced table %s", lang, synced)
		} else {
			data, err = localeFS.ReadFile("locales/" + filename)
			if err != nil {
				return fmt.Errorf("failed to read locale table for %s: %w", lang, err)
			}
		}

		table, err := parseLocaleTable(data)
		if err != nil {
			return fmt.Errorf("failed to parse locale table for %s: %w", lang, err)
		}
		names[lang] = table
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()
	return nil
}

func parseLocaleTable(data []byte) (map[int]string, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	table := make(map[int]string, len(raw))
	for key, name := range raw {
		externalID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid external id %q", key)
		}
		table[externalID] = name
	}
	return table, nil
}

// Languages returns the supported language codes.
func (s *LocaleService) Languages() []string {
	return supportedLanguages
}

// Name returns the localized name of a dye, falling back to the
// source-language name for unknown languages or missing entries.
func (s *LocaleService) Name(lang string, dye catalog.Dye) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.names[lang]
	if !ok {
		return dye.Name
	}
	if name, ok := table[dye.ExternalID]; ok {
		return name
	}
	return dye.Name
}
