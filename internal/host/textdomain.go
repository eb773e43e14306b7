package host

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// TextDomains holds one message catalog per text domain for a single locale.
// Catalogs are YAML maps stored as <dir>/<domain>-<locale>.yaml.
type TextDomains struct {
	mu       sync.RWMutex
	locale   string
	catalogs map[string]map[string]string
}

// NewTextDomains returns an empty catalog set for locale.
func NewTextDomains(locale string) *TextDomains {
	return &TextDomains{
		locale:   locale,
		catalogs: make(map[string]map[string]string),
	}
}

// Locale returns the active locale.
func (t *TextDomains) Locale() string {
	return t.locale
}

// LoadTextDomain implements yearbook.TextDomainLoader. A missing catalog
// file is not an error; the domain is marked loaded with no translations.
func (t *TextDomains) LoadTextDomain(domain, dir string) error {
	catalog := map[string]string{}
	if dir != "" {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", domain, t.locale))
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("read catalog %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &catalog); err != nil {
				return fmt.Errorf("decode catalog %s: %w", path, err)
			}
		}
	}

	t.mu.Lock()
	t.catalogs[domain] = catalog
	t.mu.Unlock()
	return nil
}

// Loaded reports whether domain has been loaded.
func (t *TextDomains) Loaded(domain string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.catalogs[domain]
	return ok
}

// Translate implements yearbook.Translator.
func (t *TextDomains) Translate(domain, msg string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if translated, ok := t.catalogs[domain][msg]; ok && translated != "" {
		return translated
	}
	return msg
}
