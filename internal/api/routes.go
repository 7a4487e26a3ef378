package api

import (
	"net/http"

	"github.com/majikthise911/aes-note-taking-app/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(mux, domain.Notes.Handler().Routes())
	routes.Register(mux, domain.Projects.Handler().Routes())
	routes.Register(mux, domain.ActionItems.Routes())
	routes.Register(mux, domain.Exports.Handler().Routes())

	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		runtime.StorageMaxListSize,
	)
	routes.Register(mux, storageHandler.routes())
}
