package host

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/yearbook"
)

func newBootedHost(t *testing.T, fieldsEnabled bool) (*Host, *yearbook.Plugin) {
	t.Helper()
	store, err := ParseContent(strings.NewReader(sampleContent), fieldsEnabled)
	if err != nil {
		t.Fatalf("parse content: %v", err)
	}
	h, err := New(Options{Logger: quietLogger(), Content: store, Locale: "en_US"})
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	p, err := yearbook.New(config.DefaultPluginConfig(), yearbook.Deps{
		Logger:      quietLogger(),
		Terms:       h.Content,
		Fields:      h.Content,
		Schema:      h.Schema,
		FieldGroups: h.Schema,
		TextDomains: h.TextDomains,
		Translator:  h.TextDomains,
		Assets:      h.Assets,
	})
	if err != nil {
		t.Fatalf("new plugin: %v", err)
	}
	p.Run(h.Dispatcher)
	if err := h.Boot(context.Background()); err != nil {
		t.Fatalf("boot: %v", err)
	}
	return h, p
}

func TestBootRegistersSchema(t *testing.T) {
	h, _ := newBootedHost(t, true)
	if _, ok := h.Schema.EntityType("wcms19yb_student"); !ok {
		t.Fatalf("student type should be registered after init")
	}
	if len(h.Schema.Taxonomies()) != 1 || len(h.Schema.FieldGroups()) != 1 {
		t.Fatalf("taxonomy and field group should be registered")
	}
	if !h.TextDomains.Loaded("wcms19-year-book") {
		t.Fatalf("text domain should be loaded on plugins_loaded")
	}
}

func TestRenderStudentWithFields(t *testing.T) {
	h, _ := newBootedHost(t, true)
	page, err := h.Render(context.Background(), "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<p>Alice</p><div class="wcms19yb-courses">Courses: Math, Art</div>` +
		`<div class="wcms19yb-student-details"><h2>Student Details</h2>` +
		`<span class="attendance">Attendance:</span> 85 %<br>` +
		`<span class="detention-hours">Detention:</span> 2.5 hours<br></div>`
	if page.Content != want {
		t.Fatalf("unexpected content:\n got %s\nwant %s", page.Content, want)
	}
	if !page.Augmented {
		t.Fatalf("page should be marked augmented")
	}
	if len(page.Styles) != 1 || len(page.Scripts) != 1 {
		t.Fatalf("public assets should be enqueued: %+v %+v", page.Styles, page.Scripts)
	}
}

func TestRenderStudentWithoutTermsIsUntouched(t *testing.T) {
	h, _ := newBootedHost(t, true)
	page, err := h.Render(context.Background(), "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Content != "" || page.Augmented {
		t.Fatalf("student without courses must not be augmented: %q", page.Content)
	}
}

func TestRenderOtherTypeAndDisabledFields(t *testing.T) {
	h, _ := newBootedHost(t, false)
	page, err := h.Render(context.Background(), "3")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Content != "<p>About</p>" {
		t.Fatalf("pages must pass through: %q", page.Content)
	}

	page, err = h.Render(context.Background(), "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(page.Content, "student-details") {
		t.Fatalf("details block requires the field accessor: %q", page.Content)
	}
	if len(h.Schema.FieldGroups()) != 0 {
		t.Fatalf("field group should not be registered when fields are disabled")
	}
}

func TestRenderUnknownEntity(t *testing.T) {
	h, _ := newBootedHost(t, true)
	if _, err := h.Render(context.Background(), "404"); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestNewRequiresContent(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("missing content store should fail")
	}
}
