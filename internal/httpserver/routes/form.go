package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/httpserver/handlers"
)

func init() { Register(registerForm) }

func registerForm(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Form(d))
	endpoint := d.Form.Endpoint
	if endpoint == "" {
		endpoint = "/"
	}
	r.Post(endpoint, handlers.Submit(d))
}
