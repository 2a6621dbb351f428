package handlers

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
)

const maxFormBytes = 1 << 20

// Form renders the demo form with the stored link values.
func Form(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		form := d.Form
		values := vanilla.Values{
			Views: make(map[string]picker.View),
			Data:  d.Submissions.Get(form.ID),
		}

		var notices []string
		for _, name := range form.LinkFields() {
			current, err := d.Controller.Store().Get(ctx, name)
			if err != nil {
				d.Logger.Error("form field load failed", logger.String("field", name), logger.Error(err))
				http.Error(w, "form could not be loaded", http.StatusInternalServerError)
				return
			}
			values.Views[name] = d.Controller.Render(name, current)
			if d.Notices != nil {
				for _, notice := range d.Notices.Drain(name) {
					notices = append(notices, notice.Message)
				}
			}
		}

		body, err := d.Renderer.Render(ctx, form, values)
		if err != nil {
			d.Logger.Error("form render failed", logger.String("form", form.ID), logger.Error(err))
			http.Error(w, "form could not be rendered", http.StatusInternalServerError)
			return
		}

		page, err := d.Renderer.Templates().RenderTemplate(vanilla.PageTemplate, map[string]any{
			"title":       form.Title,
			"locale":      d.Localize.Locale,
			"body":        string(body),
			"saved":       r.URL.Query().Get("saved") == "1",
			"saved_label": render.Translate(d.Localize, "form.saved", "Changes saved."),
			"notices":     notices,
		})
		if err != nil {
			d.Logger.Error("page render failed", logger.Error(err))
			http.Error(w, "form could not be rendered", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", d.Renderer.ContentType())
		_, _ = w.Write([]byte(page))
	}
}

// Submit persists a submitted form. Link fields are decoded from their three
// hidden inputs and written to the store unless a picker session is active
// for them, in which case the session's commit wins.
func Submit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		form := d.Form
		data := make(map[string]any, len(form.Fields))
		for _, field := range form.Fields {
			switch field.Type {
			case model.FieldTypeLink:
				if state := d.Controller.State(field.Name); state != picker.Closed {
					d.Logger.Debug("link field skipped, picker session active",
						logger.String("field", field.Name),
						logger.String("state", state.String()))
					continue
				}
				value := link.Decode(field.Name, r.PostForm)
				if err := d.Controller.Store().Set(ctx, field.Name, value); err != nil {
					d.Logger.Error("link field save failed", logger.String("field", field.Name), logger.Error(err))
					http.Error(w, "form could not be saved", http.StatusInternalServerError)
					return
				}
			case model.FieldTypeBoolean:
				data[field.Name] = link.Truthy(r.PostForm[field.Name])
			default:
				data[field.Name] = strings.TrimSpace(r.PostForm.Get(field.Name))
			}
		}
		d.Submissions.Put(form.ID, data)
		d.Logger.Info("form saved", logger.String("form", form.ID))
		http.Redirect(w, r, "/?saved=1", http.StatusSeeOther)
	}
}
