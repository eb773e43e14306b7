package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/yearbook"
)

// Hooks fired by the host itself.
const (
	HookPluginsLoaded  = "plugins_loaded"
	HookInit           = "init"
	HookEnqueueScripts = "wp_enqueue_scripts"
	HookContent        = "the_content"
)

// Options configures a Host.
type Options struct {
	Logger  *logrus.Logger
	Content *ContentStore
	Locale  string
}

// Host bundles the runtime services a plugin is wired against.
type Host struct {
	Dispatcher  *Dispatcher
	Content     *ContentStore
	Schema      *SchemaRegistry
	TextDomains *TextDomains
	Assets      AssetQueue

	logger *logrus.Logger
}

// Page is the result of rendering one entity.
type Page struct {
	Entity    yearbook.Entity
	Content   string
	Styles    []yearbook.Asset
	Scripts   []yearbook.Asset
	Augmented bool
}

// New builds a host around an already loaded content store.
func New(opts Options) (*Host, error) {
	if opts.Content == nil {
		return nil, errors.New("content store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Host{
		Dispatcher:  NewDispatcher(logger),
		Content:     opts.Content,
		Schema:      NewSchemaRegistry(),
		TextDomains: NewTextDomains(opts.Locale),
		logger:      logger,
	}, nil
}

// Boot fires plugins_loaded then init, in that order.
func (h *Host) Boot(ctx context.Context) error {
	for _, hook := range []string{HookPluginsLoaded, HookInit} {
		if err := h.Dispatcher.DoAction(ctx, hook); err != nil {
			return err
		}
	}
	h.logger.WithFields(logrus.Fields{
		"action":       "boot",
		"entity_types": len(h.Schema.EntityTypes()),
		"taxonomies":   len(h.Schema.Taxonomies()),
		"field_groups": len(h.Schema.FieldGroups()),
	}).Info("host booted")
	return nil
}

// Render loads an entity, fires the enqueue action and applies the content
// filter chain with the entity passed as explicit context.
func (h *Host) Render(ctx context.Context, entityID string) (Page, error) {
	entity, err := h.Content.Entity(ctx, entityID)
	if err != nil {
		return Page{}, err
	}

	ctx, scope := WithAssetScope(ctx)
	if err := h.Dispatcher.DoAction(ctx, HookEnqueueScripts); err != nil {
		return Page{}, err
	}

	out, err := h.Dispatcher.ApplyFilters(ctx, HookContent, entity.Content, entity)
	if err != nil {
		return Page{}, err
	}
	content, ok := out.(string)
	if !ok {
		return Page{}, fmt.Errorf("filter %s returned %T, want string", HookContent, out)
	}

	return Page{
		Entity:    entity,
		Content:   content,
		Styles:    scope.Styles(),
		Scripts:   scope.Scripts(),
		Augmented: content != entity.Content,
	}, nil
}
