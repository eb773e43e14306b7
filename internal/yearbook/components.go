package yearbook

import (
	"context"
	"fmt"

	"github.com/wcms19/yearbook/internal/hooks"
)

// locale 在 plugins_loaded 时加载插件文本域。
type locale struct {
	domain string
	dir    string
	loader TextDomainLoader
}

func (l *locale) Method(name string) (hooks.Func, bool) {
	if name != "load_plugin_textdomain" {
		return nil, false
	}
	return func(context.Context, ...any) (any, error) {
		if l.loader == nil {
			return nil, nil
		}
		return nil, l.loader.LoadTextDomain(l.domain, l.dir)
	}, true
}

// assets 为 admin 或 public 区域排队样式和脚本。
type assets struct {
	name    string
	version string
	base    string
	area    string
	queue   AssetQueue
}

func (a *assets) Method(name string) (hooks.Func, bool) {
	switch name {
	case "enqueue_styles":
		return a.enqueueStyles, true
	case "enqueue_scripts":
		return a.enqueueScripts, true
	}
	return nil, false
}

func (a *assets) enqueueStyles(ctx context.Context, _ ...any) (any, error) {
	if a.queue != nil {
		a.queue.EnqueueStyle(ctx, Asset{
			Handle:  a.name,
			Src:     fmt.Sprintf("%s%s/css/%s-%s.css", a.base, a.area, a.name, a.area),
			Version: a.version,
			Media:   "all",
		})
	}
	return nil, nil
}

func (a *assets) enqueueScripts(ctx context.Context, _ ...any) (any, error) {
	if a.queue != nil {
		a.queue.EnqueueScript(ctx, Asset{
			Handle:  a.name,
			Src:     fmt.Sprintf("%s%s/js/%s-%s.js", a.base, a.area, a.name, a.area),
			Deps:    []string{"jquery"},
			Version: a.version,
		})
	}
	return nil, nil
}

// schema 在 init 时向宿主登记实体类型与分类法。
type schema struct {
	registrar  SchemaRegistrar
	entityType EntityTypeDef
	taxonomy   TaxonomyDef
}

func (s *schema) Method(name string) (hooks.Func, bool) {
	switch name {
	case "register_cpts":
		return func(context.Context, ...any) (any, error) {
			return nil, s.registrar.RegisterEntityType(s.entityType)
		}, true
	case "register_cts":
		return func(context.Context, ...any) (any, error) {
			return nil, s.registrar.RegisterTaxonomy(s.taxonomy)
		}, true
	}
	return nil, false
}

// fieldSettings 用构造时传入的值覆盖字段存储的设置过滤器。
type fieldSettings struct {
	url       string
	showAdmin bool
}

func (f *fieldSettings) Method(name string) (hooks.Func, bool) {
	switch name {
	case "settings_url":
		return func(context.Context, ...any) (any, error) { return f.url, nil }, true
	case "settings_show_admin":
		return func(context.Context, ...any) (any, error) { return f.showAdmin, nil }, true
	}
	return nil, false
}
