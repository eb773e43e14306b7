package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/host"
	"github.com/wcms19/yearbook/internal/logging"
	"github.com/wcms19/yearbook/internal/yearbook"
)

func TestHooksRouteReportsRegistryAndListeners(t *testing.T) {
	app := newDiagnosticsApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/-/hooks", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Plugin struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"plugin"`
		Registry struct {
			Actions []registrationPayload `json:"actions"`
			Filters []registrationPayload `json:"filters"`
		} `json:"registry"`
		Listeners []host.ListenerInfo `json:"listeners"`
	}
	decodeBody(t, resp.Body, &payload)

	if payload.Plugin.Name != "wcms19-year-book" || payload.Plugin.Version != "1.0.0" {
		t.Fatalf("unexpected plugin identity %+v", payload.Plugin)
	}
	if len(payload.Registry.Actions) == 0 || payload.Registry.Actions[0].Hook != "plugins_loaded" {
		t.Fatalf("locale action should be registered first: %+v", payload.Registry.Actions)
	}

	var content *registrationPayload
	for i := range payload.Registry.Filters {
		if payload.Registry.Filters[i].Hook == "the_content" {
			content = &payload.Registry.Filters[i]
		}
	}
	if content == nil || content.Method != "filter_the_content" || content.Priority != 10 || content.AcceptedArgs != 2 {
		t.Fatalf("unexpected content filter registration %+v", content)
	}
	if len(payload.Listeners) != len(payload.Registry.Actions)+len(payload.Registry.Filters) {
		t.Fatalf("listeners should mirror registry: %d vs %d+%d",
			len(payload.Listeners), len(payload.Registry.Actions), len(payload.Registry.Filters))
	}
}

func TestHookDetailRoute(t *testing.T) {
	app := newDiagnosticsApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/-/hooks/init", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Hook      string              `json:"hook"`
		Listeners []host.ListenerInfo `json:"listeners"`
	}
	decodeBody(t, resp.Body, &payload)
	if payload.Hook != "init" || len(payload.Listeners) != 2 {
		t.Fatalf("unexpected init listeners %+v", payload)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/-/hooks/save_post", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unused hook, got %d", resp.StatusCode)
	}
}

func TestSchemaRoute(t *testing.T) {
	app := newDiagnosticsApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/-/schema", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		EntityTypes []entityTypePayload `json:"entity_types"`
		Taxonomies  []taxonomyPayload   `json:"taxonomies"`
		FieldGroups []fieldGroupPayload `json:"field_groups"`
	}
	decodeBody(t, resp.Body, &payload)

	if len(payload.EntityTypes) != 1 || payload.EntityTypes[0].Slug != "students" {
		t.Fatalf("unexpected entity types %+v", payload.EntityTypes)
	}
	if len(payload.Taxonomies) != 1 || payload.Taxonomies[0].ObjectTypes[0] != "wcms19yb_student" {
		t.Fatalf("unexpected taxonomies %+v", payload.Taxonomies)
	}
	if len(payload.FieldGroups) != 1 || len(payload.FieldGroups[0].Fields) != 2 {
		t.Fatalf("unexpected field groups %+v", payload.FieldGroups)
	}
	attendance := payload.FieldGroups[0].Fields[0]
	if attendance.Name != "attendance" || attendance.Max == nil || *attendance.Max != 100 {
		t.Fatalf("unexpected attendance field %+v", attendance)
	}
}

func newDiagnosticsApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := host.ParseContent(strings.NewReader("entities: []\n"), true)
	if err != nil {
		t.Fatalf("parse content: %v", err)
	}
	h, err := host.New(host.Options{Logger: logging.Discard(), Content: store})
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	p, err := yearbook.New(config.DefaultPluginConfig(), yearbook.Deps{
		Logger:      logging.Discard(),
		Terms:       h.Content,
		Fields:      h.Content,
		Schema:      h.Schema,
		FieldGroups: h.Schema,
		TextDomains: h.TextDomains,
		Assets:      h.Assets,
	})
	if err != nil {
		t.Fatalf("new plugin: %v", err)
	}
	p.Run(h.Dispatcher)
	if err := h.Boot(context.Background()); err != nil {
		t.Fatalf("boot: %v", err)
	}

	app := fiber.New()
	RegisterDiagnosticsRoutes(app, h, p)
	return app
}

func decodeBody(t *testing.T, body io.ReadCloser, out any) {
	t.Helper()
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
