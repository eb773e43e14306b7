package host

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/wcms19/yearbook/internal/yearbook"
)

// ErrDuplicateSchema indicates a key is already registered.
var ErrDuplicateSchema = errors.New("schema already registered")

// SchemaRegistry records entity types, taxonomies and field groups handed
// over by plugins. Keys are case-insensitive.
type SchemaRegistry struct {
	mu          sync.RWMutex
	entityTypes map[string]yearbook.EntityTypeDef
	taxonomies  map[string]yearbook.TaxonomyDef
	fieldGroups map[string]yearbook.FieldGroupDef
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		entityTypes: make(map[string]yearbook.EntityTypeDef),
		taxonomies:  make(map[string]yearbook.TaxonomyDef),
		fieldGroups: make(map[string]yearbook.FieldGroupDef),
	}
}

// RegisterEntityType implements yearbook.SchemaRegistrar.
func (r *SchemaRegistry) RegisterEntityType(def yearbook.EntityTypeDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	key := normalizeKey(def.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entityTypes[key]; exists {
		return fmt.Errorf("%w: entity type %s", ErrDuplicateSchema, key)
	}
	r.entityTypes[key] = def
	return nil
}

// RegisterTaxonomy implements yearbook.SchemaRegistrar. Every object type
// must already be registered.
func (r *SchemaRegistry) RegisterTaxonomy(def yearbook.TaxonomyDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	key := normalizeKey(def.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.taxonomies[key]; exists {
		return fmt.Errorf("%w: taxonomy %s", ErrDuplicateSchema, key)
	}
	for _, objectType := range def.ObjectTypes {
		if _, ok := r.entityTypes[normalizeKey(objectType)]; !ok {
			return fmt.Errorf("taxonomy %s: unknown object type %s", key, objectType)
		}
	}
	r.taxonomies[key] = def
	return nil
}

// AddFieldGroup implements yearbook.FieldGroupRegistrar.
func (r *SchemaRegistry) AddFieldGroup(group yearbook.FieldGroupDef) error {
	if err := group.Validate(); err != nil {
		return err
	}
	key := normalizeKey(group.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fieldGroups[key]; exists {
		return fmt.Errorf("%w: field group %s", ErrDuplicateSchema, key)
	}
	r.fieldGroups[key] = group
	return nil
}

// EntityType resolves an entity type by key.
func (r *SchemaRegistry) EntityType(key string) (yearbook.EntityTypeDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entityTypes[normalizeKey(key)]
	return def, ok
}

// EntityTypeBySlug resolves a public entity type by its URL slug.
func (r *SchemaRegistry) EntityTypeBySlug(slug string) (yearbook.EntityTypeDef, bool) {
	slug = normalizeKey(slug)
	if slug == "" {
		return yearbook.EntityTypeDef{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.entityTypes {
		if def.Public && normalizeKey(def.Slug) == slug {
			return def, true
		}
	}
	return yearbook.EntityTypeDef{}, false
}

// EntityTypes lists entity types sorted by key.
func (r *SchemaRegistry) EntityTypes() []yearbook.EntityTypeDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.entityTypes)
}

// Taxonomies lists taxonomies sorted by key.
func (r *SchemaRegistry) Taxonomies() []yearbook.TaxonomyDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.taxonomies)
}

// FieldGroups lists field groups sorted by key.
func (r *SchemaRegistry) FieldGroups() []yearbook.FieldGroupDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.fieldGroups)
}

func sortedValues[T any](m map[string]T) []T {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]T, 0, len(keys))
	for _, key := range keys {
		result = append(result, m[key])
	}
	return result
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
