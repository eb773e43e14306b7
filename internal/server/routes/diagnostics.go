package routes

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/wcms19/yearbook/internal/hooks"
	"github.com/wcms19/yearbook/internal/host"
	"github.com/wcms19/yearbook/internal/yearbook"
)

// RegisterDiagnosticsRoutes 暴露 /-/hooks 与 /-/schema 诊断接口，
// 便于确认插件登记的钩子、宿主中实际生效的监听器以及已登记的静态声明。
func RegisterDiagnosticsRoutes(app *fiber.App, h *host.Host, plugin *yearbook.Plugin) {
	if app == nil || h == nil || plugin == nil {
		return
	}

	app.Get("/-/hooks", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"plugin": fiber.Map{
				"name":    plugin.Name(),
				"version": plugin.Version(),
			},
			"registry": fiber.Map{
				"actions": encodeRegistrations(plugin.Registry().Actions()),
				"filters": encodeRegistrations(plugin.Registry().Filters()),
			},
			"listeners": h.Dispatcher.Listeners(),
		})
	})

	app.Get("/-/hooks/:hook", func(c fiber.Ctx) error {
		hook := strings.TrimSpace(c.Params("hook"))
		if hook == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hook_required"})
		}
		var matched []host.ListenerInfo
		for _, info := range h.Dispatcher.Listeners() {
			if info.Hook == hook {
				matched = append(matched, info)
			}
		}
		if len(matched) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "hook_not_found"})
		}
		return c.JSON(fiber.Map{"hook": hook, "listeners": matched})
	})

	app.Get("/-/schema", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"entity_types": encodeEntityTypes(h.Schema.EntityTypes()),
			"taxonomies":   encodeTaxonomies(h.Schema.Taxonomies()),
			"field_groups": encodeFieldGroups(h.Schema.FieldGroups()),
		})
	})
}

type registrationPayload struct {
	Hook         string `json:"hook"`
	Method       string `json:"method"`
	Priority     int    `json:"priority"`
	AcceptedArgs int    `json:"accepted_args"`
}

type entityTypePayload struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	Slug       string   `json:"slug"`
	Public     bool     `json:"public"`
	HasArchive bool     `json:"has_archive"`
	ShowInREST bool     `json:"show_in_rest"`
	Supports   []string `json:"supports"`
}

type taxonomyPayload struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	ObjectTypes  []string `json:"object_types"`
	Hierarchical bool     `json:"hierarchical"`
	RESTBase     string   `json:"rest_base"`
}

type fieldPayload struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Type   string   `json:"type"`
	Append string   `json:"append,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

type fieldGroupPayload struct {
	Key    string         `json:"key"`
	Title  string         `json:"title"`
	Active bool           `json:"active"`
	Fields []fieldPayload `json:"fields"`
}

func encodeRegistrations(regs []hooks.Registration) []registrationPayload {
	result := make([]registrationPayload, 0, len(regs))
	for _, reg := range regs {
		result = append(result, registrationPayload{
			Hook:         reg.Hook,
			Method:       reg.Method,
			Priority:     reg.Priority,
			AcceptedArgs: reg.AcceptedArgs,
		})
	}
	return result
}

func encodeEntityTypes(defs []yearbook.EntityTypeDef) []entityTypePayload {
	result := make([]entityTypePayload, 0, len(defs))
	for _, def := range defs {
		result = append(result, entityTypePayload{
			Key:        def.Key,
			Label:      def.Label,
			Slug:       def.Slug,
			Public:     def.Public,
			HasArchive: def.HasArchive,
			ShowInREST: def.ShowInREST,
			Supports:   append([]string(nil), def.Supports...),
		})
	}
	return result
}

func encodeTaxonomies(defs []yearbook.TaxonomyDef) []taxonomyPayload {
	result := make([]taxonomyPayload, 0, len(defs))
	for _, def := range defs {
		result = append(result, taxonomyPayload{
			Key:          def.Key,
			Label:        def.Label,
			ObjectTypes:  append([]string(nil), def.ObjectTypes...),
			Hierarchical: def.Hierarchical,
			RESTBase:     def.RESTBase,
		})
	}
	return result
}

func encodeFieldGroups(groups []yearbook.FieldGroupDef) []fieldGroupPayload {
	result := make([]fieldGroupPayload, 0, len(groups))
	for _, g := range groups {
		fields := make([]fieldPayload, 0, len(g.Fields))
		for _, f := range g.Fields {
			fields = append(fields, fieldPayload{
				Name:   f.Name,
				Label:  f.Label,
				Type:   f.Type,
				Append: f.Append,
				Min:    f.Min,
				Max:    f.Max,
			})
		}
		result = append(result, fieldGroupPayload{
			Key:    g.Key,
			Title:  g.Title,
			Active: g.Active,
			Fields: fields,
		})
	}
	return result
}
