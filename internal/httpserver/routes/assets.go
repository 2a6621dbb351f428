package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/httpserver/handlers"
)

// AssetsPath is where the browser runtime is served.
const AssetsPath = "/assets"

func init() { Register(registerAssets) }

func registerAssets(r chi.Router, _ deps.Deps) {
	r.Handle(AssetsPath+"/*", handlers.Assets(AssetsPath+"/"))
}
