package yearbook

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/hooks"
)

type recordingSchema struct {
	entityTypes []EntityTypeDef
	taxonomies  []TaxonomyDef
	groups      []FieldGroupDef
	groupErr    error
}

func (r *recordingSchema) RegisterEntityType(def EntityTypeDef) error {
	r.entityTypes = append(r.entityTypes, def)
	return nil
}

func (r *recordingSchema) RegisterTaxonomy(def TaxonomyDef) error {
	r.taxonomies = append(r.taxonomies, def)
	return nil
}

func (r *recordingSchema) AddFieldGroup(group FieldGroupDef) error {
	if r.groupErr != nil {
		return r.groupErr
	}
	r.groups = append(r.groups, group)
	return nil
}

type recordingDomains struct {
	loaded []string
}

func (r *recordingDomains) LoadTextDomain(domain, dir string) error {
	r.loaded = append(r.loaded, domain+"@"+dir)
	return nil
}

type recordingAssets struct {
	styles  []Asset
	scripts []Asset
}

func (r *recordingAssets) EnqueueStyle(_ context.Context, a Asset)  { r.styles = append(r.styles, a) }
func (r *recordingAssets) EnqueueScript(_ context.Context, a Asset) { r.scripts = append(r.scripts, a) }

type binding struct {
	kind     hooks.Kind
	hook     string
	cb       hooks.Callback
	args     int
	priority int
}

type captureDispatcher struct {
	bindings []binding
}

func (d *captureDispatcher) RegisterAction(hook string, cb hooks.Callback, priority, acceptedArgs int) {
	d.bindings = append(d.bindings, binding{hooks.KindAction, hook, cb, acceptedArgs, priority})
}

func (d *captureDispatcher) RegisterFilter(hook string, cb hooks.Callback, priority, acceptedArgs int) {
	d.bindings = append(d.bindings, binding{hooks.KindFilter, hook, cb, acceptedArgs, priority})
}

func (d *captureDispatcher) fire(t *testing.T, hook string, args ...any) []any {
	t.Helper()
	var results []any
	for _, b := range d.bindings {
		if b.hook != hook {
			continue
		}
		out, err := b.cb.Invoke(context.Background(), args...)
		if err != nil {
			t.Fatalf("hook %s failed: %v", hook, err)
		}
		results = append(results, out)
	}
	return results
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestPlugin(t *testing.T, fieldsAvailable bool) (*Plugin, *recordingSchema, *recordingDomains, *recordingAssets) {
	t.Helper()
	schemaRec := &recordingSchema{}
	domains := &recordingDomains{}
	assetsRec := &recordingAssets{}
	p, err := New(config.DefaultPluginConfig(), Deps{
		Logger:        quietLogger(),
		Terms:         &fakeTerms{labels: map[string][]string{"1/" + testCourses: {"Math"}}},
		Fields:        &fakeFields{available: fieldsAvailable},
		Schema:        schemaRec,
		FieldGroups:   schemaRec,
		TextDomains:   domains,
		Assets:        assetsRec,
		LanguagesPath: "/lang",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p, schemaRec, domains, assetsRec
}

func TestNewRegistersHooksInBootstrapOrder(t *testing.T) {
	p, _, _, _ := newTestPlugin(t, true)

	var actions []string
	for _, reg := range p.Registry().Actions() {
		actions = append(actions, reg.Hook+":"+reg.Method)
	}
	wantActions := []string{
		"plugins_loaded:load_plugin_textdomain",
		"admin_enqueue_scripts:enqueue_styles",
		"admin_enqueue_scripts:enqueue_scripts",
		"wp_enqueue_scripts:enqueue_styles",
		"wp_enqueue_scripts:enqueue_scripts",
		"init:register_cpts",
		"init:register_cts",
	}
	if len(actions) != len(wantActions) {
		t.Fatalf("unexpected actions: %v", actions)
	}
	for i := range wantActions {
		if actions[i] != wantActions[i] {
			t.Fatalf("action %d: want %s, got %s", i, wantActions[i], actions[i])
		}
	}

	filters := p.Registry().Filters()
	if len(filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(filters))
	}
	if filters[0].Hook != HookContent || filters[0].Method != MethodFilterContent || filters[0].AcceptedArgs != 2 {
		t.Fatalf("unexpected content filter: %+v", filters[0])
	}
	if filters[1].Hook != HookFieldsSettingsURL || filters[2].Hook != HookFieldsShowAdmin {
		t.Fatalf("unexpected settings filters: %+v", filters[1:])
	}
}

func TestRunFlushesEveryBinding(t *testing.T) {
	p, schemaRec, domains, assetsRec := newTestPlugin(t, true)
	d := &captureDispatcher{}
	p.Run(d)

	if len(d.bindings) != p.Registry().Len() {
		t.Fatalf("expected %d bindings, got %d", p.Registry().Len(), len(d.bindings))
	}

	d.fire(t, HookPluginsLoaded)
	if len(domains.loaded) != 1 || domains.loaded[0] != "wcms19-year-book@/lang" {
		t.Fatalf("text domain not loaded: %v", domains.loaded)
	}

	d.fire(t, HookInit)
	if len(schemaRec.entityTypes) != 1 || schemaRec.entityTypes[0].Key != testStudentType {
		t.Fatalf("entity type not registered: %+v", schemaRec.entityTypes)
	}
	if len(schemaRec.taxonomies) != 1 || schemaRec.taxonomies[0].ObjectTypes[0] != testStudentType {
		t.Fatalf("taxonomy not registered: %+v", schemaRec.taxonomies)
	}

	d.fire(t, HookEnqueueScripts)
	if len(assetsRec.styles) != 1 || assetsRec.styles[0].Src != "/assets/public/css/wcms19-year-book-public.css" {
		t.Fatalf("unexpected public styles: %+v", assetsRec.styles)
	}
	if len(assetsRec.scripts) != 1 || assetsRec.scripts[0].Deps[0] != "jquery" {
		t.Fatalf("unexpected public scripts: %+v", assetsRec.scripts)
	}

	url := d.fire(t, HookFieldsSettingsURL, "ignored")
	if len(url) != 1 || url[0] != "/assets/acf/" {
		t.Fatalf("settings url override failed: %v", url)
	}
	show := d.fire(t, HookFieldsShowAdmin, true)
	if len(show) != 1 || show[0] != false {
		t.Fatalf("show admin override failed: %v", show)
	}

	out := d.fire(t, HookContent, "body", student("1"))
	if len(out) != 1 || out[0] == "body" {
		t.Fatalf("content filter should augment, got %v", out)
	}
}

func TestFieldGroupRegisteredOnlyWhenAccessorAvailable(t *testing.T) {
	_, withFields, _, _ := newTestPlugin(t, true)
	if len(withFields.groups) != 1 || withFields.groups[0].Key != "group_5ee86f78ca53a" {
		t.Fatalf("field group should be registered: %+v", withFields.groups)
	}

	_, withoutFields, _, _ := newTestPlugin(t, false)
	if len(withoutFields.groups) != 0 {
		t.Fatalf("field group should be skipped without accessor")
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	cfg := config.DefaultPluginConfig()
	if _, err := New(cfg, Deps{Schema: &recordingSchema{}}); err == nil {
		t.Fatalf("missing taxonomy should fail")
	}
	if _, err := New(cfg, Deps{Terms: &fakeTerms{}}); err == nil {
		t.Fatalf("missing schema registrar should fail")
	}

	bad := cfg
	bad.EntityType = ""
	if _, err := New(bad, Deps{Terms: &fakeTerms{}, Schema: &recordingSchema{}}); err == nil {
		t.Fatalf("invalid config should fail")
	}
}

func TestNewSurfacesFieldGroupError(t *testing.T) {
	boom := errors.New("duplicate group")
	rec := &recordingSchema{groupErr: boom}
	_, err := New(config.DefaultPluginConfig(), Deps{
		Logger:      quietLogger(),
		Terms:       &fakeTerms{},
		Fields:      &fakeFields{available: true},
		Schema:      rec,
		FieldGroups: rec,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped field group error, got %v", err)
	}
}

func TestOptionalCollaboratorsMayBeNil(t *testing.T) {
	p, err := New(config.DefaultPluginConfig(), Deps{
		Logger: quietLogger(),
		Terms:  &fakeTerms{},
		Schema: &recordingSchema{},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d := &captureDispatcher{}
	p.Run(d)
	d.fire(t, HookPluginsLoaded)
	d.fire(t, HookAdminEnqueueScripts)

	if err := p.Activate(context.Background()); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if err := p.Deactivate(context.Background()); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if p.Name() != "wcms19-year-book" || p.Version() != "1.0.0" {
		t.Fatalf("unexpected identity %s %s", p.Name(), p.Version())
	}
}
