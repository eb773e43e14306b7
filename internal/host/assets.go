package host

import (
	"context"
	"sync"

	"github.com/wcms19/yearbook/internal/yearbook"
)

type assetScopeKey struct{}

// AssetScope collects the styles and scripts enqueued while rendering one
// request. Handles are de-duplicated; the first enqueue wins.
type AssetScope struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	styles  []yearbook.Asset
	scripts []yearbook.Asset
}

// WithAssetScope returns a context carrying a fresh scope.
func WithAssetScope(ctx context.Context) (context.Context, *AssetScope) {
	scope := &AssetScope{seen: make(map[string]struct{})}
	return context.WithValue(ctx, assetScopeKey{}, scope), scope
}

func assetScopeFrom(ctx context.Context) *AssetScope {
	if scope, ok := ctx.Value(assetScopeKey{}).(*AssetScope); ok {
		return scope
	}
	return nil
}

// Styles returns the enqueued styles in order.
func (s *AssetScope) Styles() []yearbook.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]yearbook.Asset(nil), s.styles...)
}

// Scripts returns the enqueued scripts in order.
func (s *AssetScope) Scripts() []yearbook.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]yearbook.Asset(nil), s.scripts...)
}

func (s *AssetScope) add(kind string, asset yearbook.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := kind + ":" + asset.Handle
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}
	if kind == "style" {
		s.styles = append(s.styles, asset)
	} else {
		s.scripts = append(s.scripts, asset)
	}
}

// AssetQueue implements yearbook.AssetQueue by writing into the scope
// carried by the context. Enqueues outside a scope are dropped.
type AssetQueue struct{}

// EnqueueStyle records a stylesheet.
func (AssetQueue) EnqueueStyle(ctx context.Context, asset yearbook.Asset) {
	if scope := assetScopeFrom(ctx); scope != nil {
		scope.add("style", asset)
	}
}

// EnqueueScript records a script.
func (AssetQueue) EnqueueScript(ctx context.Context, asset yearbook.Asset) {
	if scope := assetScopeFrom(ctx); scope != nil {
		scope.add("script", asset)
	}
}
