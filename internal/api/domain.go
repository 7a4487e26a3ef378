package api

import (
	"github.com/majikthise911/aes-note-taking-app/internal/actionitems"
	"github.com/majikthise911/aes-note-taking-app/internal/categories"
	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/internal/exports"
	"github.com/majikthise911/aes-note-taking-app/internal/notes"
	"github.com/majikthise911/aes-note-taking-app/internal/projects"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Classifier  *classifier.Client
	Notes       notes.System
	Projects    projects.System
	ActionItems *actionitems.Handler
	Exports     exports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	catalog := categories.DefaultCatalog()

	client := classifier.New(
		runtime.Classifier,
		catalog,
		runtime.Logger,
	)

	notesSystem := notes.New(
		runtime.Database.Connection(),
		client,
		runtime.Logger,
		runtime.Pagination,
	)

	projectsSystem := projects.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	exportsSystem := exports.New(
		notesSystem,
		runtime.Storage,
		runtime.Pagination,
		runtime.Logger,
	)

	return &Domain{
		Classifier:  client,
		Notes:       notesSystem,
		Projects:    projectsSystem,
		ActionItems: actionitems.NewHandler(notesSystem, runtime.Logger, runtime.Pagination),
		Exports:     exportsSystem,
	}
}
