package projects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/internal/projects"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/routes"
)

type fakeSystem struct {
	listResult *pagination.PageResult[projects.Project]
	project    *projects.Project
	err        error
	lastCreate projects.CreateCommand
	deleted    []uuid.UUID
}

func (f *fakeSystem) Handler() *projects.Handler { return nil }

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[projects.Project], error) {
	return f.listResult, f.err
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	return f.project, f.err
}

func (f *fakeSystem) Create(ctx context.Context, cmd projects.CreateCommand) (*projects.Project, error) {
	f.lastCreate = cmd
	return f.project, f.err
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func testServer(t *testing.T, sys *fakeSystem) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	handler := projects.NewHandler(sys, logger, pg)

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestList(t *testing.T) {
	result := pagination.NewPageResult(
		[]projects.Project{{ID: uuid.New(), Name: "Riverside Solar"}},
		1, 1, 20,
	)
	sys := &fakeSystem{listResult: &result}
	server := testServer(t, sys)

	resp, err := http.Get(server.URL + "/projects")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var page pagination.PageResult[projects.Project]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Riverside Solar" {
		t.Errorf("data: got %+v", page.Data)
	}
}

func TestCreate(t *testing.T) {
	created := &projects.Project{
		ID:        uuid.New(),
		Name:      "Riverside Solar",
		CreatedAt: time.Now(),
	}
	sys := &fakeSystem{project: created}
	server := testServer(t, sys)

	data, _ := json.Marshal(projects.CreateCommand{Name: "Riverside Solar"})
	resp, err := http.Post(server.URL+"/projects", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}
	if sys.lastCreate.Name != "Riverside Solar" {
		t.Errorf("name not forwarded: got %q", sys.lastCreate.Name)
	}

	var p projects.Project
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != created.ID {
		t.Errorf("id: got %s, want %s", p.ID, created.ID)
	}
}

func TestCreateEmptyName(t *testing.T) {
	sys := &fakeSystem{err: projects.ErrNameEmpty}
	server := testServer(t, sys)

	data, _ := json.Marshal(projects.CreateCommand{Name: ""})
	resp, err := http.Post(server.URL+"/projects", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestCreateDuplicate(t *testing.T) {
	sys := &fakeSystem{err: projects.ErrDuplicate}
	server := testServer(t, sys)

	data, _ := json.Marshal(projects.CreateCommand{Name: "Riverside Solar"})
	resp, err := http.Post(server.URL+"/projects", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status: got %d, want 409", resp.StatusCode)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := &fakeSystem{err: projects.ErrNotFound}
	server := testServer(t, sys)

	resp, err := http.Get(server.URL + "/projects/" + uuid.NewString())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestFindInvalidID(t *testing.T) {
	server := testServer(t, &fakeSystem{})

	resp, err := http.Get(server.URL + "/projects/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	id := uuid.New()
	sys := &fakeSystem{}
	server := testServer(t, sys)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/projects/"+id.String(), nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", resp.StatusCode)
	}
	if len(sys.deleted) != 1 || sys.deleted[0] != id {
		t.Errorf("deleted: got %v, want [%s]", sys.deleted, id)
	}
}
