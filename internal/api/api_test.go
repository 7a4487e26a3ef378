package api_test

import (
	"encoding/json"
	"testing"

	"github.com/majikthise911/aes-note-taking-app/internal/api"
	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/internal/config"
	"github.com/majikthise911/aes-note-taking-app/internal/infrastructure"
	"github.com/majikthise911/aes-note-taking-app/pkg/database"
	"github.com/majikthise911/aes-note-taking-app/pkg/middleware"
	"github.com/majikthise911/aes-note-taking-app/pkg/openapi"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=notestore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/notestore;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "3m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "notes",
			User:            "notes",
			Password:        "notes",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "exports",
			ConnectionString: azuriteConnString,
		},
		Classifier: classifier.Config{
			Endpoint:     "https://api.x.ai/v1/chat/completions",
			APIKey:       "test-key",
			Model:        "grok-3-mini",
			Timeout:      "30s",
			MaxAttempts:  3,
			BackoffBase:  "1s",
			CacheMaxSize: 256,
		},
		API: config.APIConfig{
			BasePath: "/api",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
			OpenAPI: openapi.Config{
				Title:       "Notes API",
				Description: "test",
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.Classifier == nil {
		t.Error("runtime classifier config is nil")
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}
	if domain.Classifier == nil {
		t.Error("classifier client is nil")
	}
	if domain.Notes == nil {
		t.Error("notes system is nil")
	}
	if domain.Projects == nil {
		t.Error("projects system is nil")
	}
	if domain.ActionItems == nil {
		t.Error("action items handler is nil")
	}
	if domain.Exports == nil {
		t.Error("exports system is nil")
	}
}

func TestBuildSpec(t *testing.T) {
	spec := api.BuildSpec(validConfig())

	if spec.Info.Title != "Notes API" {
		t.Errorf("title: got %s, want Notes API", spec.Info.Title)
	}
	if spec.Info.Version != "0.1.0" {
		t.Errorf("version: got %s, want 0.1.0", spec.Info.Version)
	}

	for _, path := range []string{
		"/notes",
		"/notes/{id}",
		"/notes/{id}/approve",
		"/notes/{id}/reject",
		"/notes/{id}/restore",
		"/notes/{id}/reclassify",
		"/notes/restore-all",
		"/notes/delete-all",
		"/notes/categories",
		"/notes/statistics",
		"/projects",
		"/projects/{id}",
		"/action-items/grouped",
		"/exports/{format}",
		"/exports/archive",
	} {
		if spec.Paths[path] == nil {
			t.Errorf("missing path %s", path)
		}
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("marshal spec: %v", err)
	}
	if !json.Valid(data) {
		t.Error("spec is not valid JSON")
	}
}
