package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wcms19/yearbook/internal/yearbook"
)

// ErrEntityNotFound is returned for lookups of unknown entity IDs.
var ErrEntityNotFound = errors.New("entity not found")

var (
	_ yearbook.EntityTypes   = (*ContentStore)(nil)
	_ yearbook.Taxonomy      = (*ContentStore)(nil)
	_ yearbook.FieldAccessor = (*ContentStore)(nil)
)

type contentFile struct {
	Entities []entityRecord `yaml:"entities"`
}

type entityRecord struct {
	ID      string              `yaml:"id"`
	Type    string              `yaml:"type"`
	Title   string              `yaml:"title"`
	Content string              `yaml:"content"`
	Terms   map[string][]string `yaml:"terms"`
	Fields  map[string]any      `yaml:"fields"`
}

type storedEntity struct {
	entity yearbook.Entity
	terms  map[string][]string
	fields map[string]yearbook.FieldValue
}

// ContentStore is a read-only entity, term and custom-field store loaded
// from a YAML document. A field key that is missing is absent; a null or
// blank value is present but empty.
type ContentStore struct {
	order         []string
	entities      map[string]storedEntity
	fieldsEnabled bool
}

// LoadContent reads the YAML content file at path.
func LoadContent(path string, fieldsEnabled bool) (*ContentStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return ParseContent(bytes.NewReader(data), fieldsEnabled)
}

// ParseContent decodes a YAML content document.
func ParseContent(r io.Reader, fieldsEnabled bool) (*ContentStore, error) {
	var doc contentFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	store := &ContentStore{
		entities:      make(map[string]storedEntity, len(doc.Entities)),
		fieldsEnabled: fieldsEnabled,
	}
	for i, rec := range doc.Entities {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			return nil, fmt.Errorf("entities[%d]: id is required", i)
		}
		if _, dup := store.entities[id]; dup {
			return nil, fmt.Errorf("entities[%d]: duplicate id %s", i, id)
		}
		if strings.TrimSpace(rec.Type) == "" {
			return nil, fmt.Errorf("entity %s: type is required", id)
		}
		fields, err := decodeFields(rec.Fields)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", id, err)
		}
		store.entities[id] = storedEntity{
			entity: yearbook.Entity{
				ID:      id,
				Type:    rec.Type,
				Title:   rec.Title,
				Content: rec.Content,
			},
			terms:  rec.Terms,
			fields: fields,
		}
		store.order = append(store.order, id)
	}
	return store, nil
}

func decodeFields(raw map[string]any) (map[string]yearbook.FieldValue, error) {
	out := make(map[string]yearbook.FieldValue, len(raw))
	for key, value := range raw {
		var n float64
		switch v := value.(type) {
		case nil:
			out[key] = yearbook.Empty()
			continue
		case int:
			n = float64(v)
		case int64:
			n = float64(v)
		case float64:
			n = v
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				out[key] = yearbook.Empty()
				continue
			}
			parsed, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not numeric", key, v)
			}
			n = parsed
		default:
			return nil, fmt.Errorf("field %s: unsupported value type %T", key, value)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("field %s: %v is not a finite number", key, value)
		}
		out[key] = yearbook.Number(n)
	}
	return out, nil
}

// Entity returns the entity with the given ID.
func (s *ContentStore) Entity(_ context.Context, id string) (yearbook.Entity, error) {
	stored, ok := s.entities[id]
	if !ok {
		return yearbook.Entity{}, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	return stored.entity, nil
}

// EntityType implements yearbook.EntityTypes.
func (s *ContentStore) EntityType(ctx context.Context, id string) (string, error) {
	e, err := s.Entity(ctx, id)
	if err != nil {
		return "", err
	}
	return e.Type, nil
}

// Entities lists entities of the given type in file order; an empty type lists all.
func (s *ContentStore) Entities(entityType string) []yearbook.Entity {
	var out []yearbook.Entity
	for _, id := range s.order {
		e := s.entities[id].entity
		if entityType == "" || e.Type == entityType {
			out = append(out, e)
		}
	}
	return out
}

// TermLabels implements yearbook.Taxonomy. Unknown taxonomies yield no terms.
func (s *ContentStore) TermLabels(_ context.Context, entityID, taxonomy string) ([]string, error) {
	stored, ok := s.entities[entityID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, entityID)
	}
	return append([]string(nil), stored.terms[taxonomy]...), nil
}

// Available implements yearbook.FieldAccessor.
func (s *ContentStore) Available() bool {
	return s.fieldsEnabled
}

// FieldValue implements yearbook.FieldAccessor.
func (s *ContentStore) FieldValue(_ context.Context, entityID, key string) (yearbook.FieldValue, error) {
	stored, ok := s.entities[entityID]
	if !ok {
		return yearbook.Absent, fmt.Errorf("%w: %s", ErrEntityNotFound, entityID)
	}
	value, ok := stored.fields[key]
	if !ok {
		return yearbook.Absent, nil
	}
	return value, nil
}
