package server

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/host"
	"github.com/wcms19/yearbook/internal/logging"
	"github.com/wcms19/yearbook/internal/yearbook"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- range .Styles}}
<link rel="stylesheet" id="{{.Handle}}-css" href="{{.Src}}?ver={{.Version}}" media="{{.Media}}">
{{- end}}
{{- range .Scripts}}
<script id="{{.Handle}}-js" src="{{.Src}}?ver={{.Version}}"></script>
{{- end}}
</head>
<body>
<article class="{{.Type}}" data-id="{{.ID}}">
<h1>{{.Title}}</h1>
{{.Content}}
</article>
</body>
</html>
`))

type pageView struct {
	ID      string
	Type    string
	Title   string
	Content template.HTML
	Styles  []yearbook.Asset
	Scripts []yearbook.Asset
}

type renderer struct {
	host   *host.Host
	logger *logrus.Logger
}

// single renders one entity through the_content filter chain.
func (r *renderer) single(c fiber.Ctx) error {
	if isDiagnosticsPath(c.Path()) {
		return c.Next()
	}
	def, ok := r.host.Schema.EntityTypeBySlug(c.Params("slug"))
	if !ok {
		return notFound(c, "entity_type_not_found")
	}

	page, err := r.host.Render(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, host.ErrEntityNotFound) {
			return notFound(c, "entity_not_found")
		}
		r.logger.WithFields(logging.RenderFields(RequestID(c), c.Params("id"), def.Key, false)).
			Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render_failed"})
	}
	if page.Entity.Type != def.Key {
		return notFound(c, "entity_not_found")
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageView{
		ID:      page.Entity.ID,
		Type:    page.Entity.Type,
		Title:   page.Entity.Title,
		Content: template.HTML(page.Content),
		Styles:  page.Styles,
		Scripts: page.Scripts,
	})
	if err != nil {
		return err
	}

	r.logger.WithFields(logging.RenderFields(RequestID(c), page.Entity.ID, page.Entity.Type, page.Augmented)).
		Debug("entity rendered")

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

type archiveItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// archive lists the entities of a type that declares an archive.
func (r *renderer) archive(c fiber.Ctx) error {
	if isDiagnosticsPath(c.Path()) {
		return c.Next()
	}
	def, ok := r.host.Schema.EntityTypeBySlug(c.Params("slug"))
	if !ok || !def.HasArchive {
		return notFound(c, "entity_type_not_found")
	}

	entities := r.host.Content.Entities(def.Key)
	items := make([]archiveItem, 0, len(entities))
	for _, e := range entities {
		items = append(items, archiveItem{
			ID:    e.ID,
			Title: e.Title,
			URL:   "/" + def.Slug + "/" + e.ID,
		})
	}
	return c.JSON(fiber.Map{
		"entity_type": def.Key,
		"label":       def.Label,
		"entities":    items,
	})
}

func notFound(c fiber.Ctx, code string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": code})
}
