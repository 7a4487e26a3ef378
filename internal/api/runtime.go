package api

import (
	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/internal/config"
	"github.com/majikthise911/aes-note-taking-app/internal/infrastructure"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Classifier *classifier.Config
	Pagination pagination.Config

	// StorageMaxListSize caps a single storage listing page.
	StorageMaxListSize int32
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Classifier:         &cfg.Classifier,
		Pagination:         cfg.API.Pagination,
		StorageMaxListSize: cfg.Storage.MaxListSize,
	}
}
