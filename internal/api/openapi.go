package api

import (
	"fmt"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
	"github.com/majikthise911/aes-note-taking-app/internal/config"
	"github.com/majikthise911/aes-note-taking-app/pkg/openapi"
)

// BuildSpec constructs the OpenAPI document describing the API surface.
func BuildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(noteSchemas())
	spec.Components.AddSchemas(projectSchemas())
	spec.Components.AddSchemas(exportSchemas())

	addNotePaths(spec)
	addProjectPaths(spec)
	addActionItemPaths(spec)
	addExportPaths(spec)

	return spec
}

func noteSchemas() map[string]*openapi.Schema {
	zero, one := 0.0, 1.0

	statuses := []any{"pending", "approved", "rejected"}
	catalog := categories.DefaultCatalog()
	labels := make([]any, 0, catalog.Len())
	for _, label := range catalog.Labels() {
		labels = append(labels, label)
	}

	return map[string]*openapi.Schema{
		"Note": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                  {Type: "string", Format: "uuid"},
				"project_id":          {Type: "string", Format: "uuid"},
				"raw_text":            {Type: "string", Description: "Original submitted text"},
				"cleaned_text":        {Type: "string", Description: "Model-cleaned text, absent until classified"},
				"category":            {Type: "string", Enum: labels},
				"confidence_score":    {Type: "number", Minimum: &zero, Maximum: &one},
				"clarifying_question": {Type: "string"},
				"approval_status":     {Type: "string", Enum: statuses},
				"date":                {Type: "string", Example: "2026-01-15"},
				"timestamp":           {Type: "string", Example: "14:03:22"},
				"created_at":          {Type: "string", Format: "date-time"},
			},
		},
		"SubmitCommand": {
			Type:     "object",
			Required: []string{"project_id", "raw_text"},
			Properties: map[string]*openapi.Schema{
				"project_id": {Type: "string", Format: "uuid"},
				"raw_text":   {Type: "string"},
			},
		},
		"SubmitResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"notes":        {Type: "array", Items: openapi.SchemaRef("Note")},
				"from_cache":   {Type: "boolean"},
				"unclassified": {Type: "boolean", Description: "Stored raw without classification after pipeline failure"},
			},
		},
		"ApproveCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"cleaned_text": {Type: "string", Description: "Optional override of the model-cleaned text"},
				"category":     {Type: "string", Description: "Optional category override"},
			},
		},
		"EditCommand": {
			Type:     "object",
			Required: []string{"cleaned_text", "category"},
			Properties: map[string]*openapi.Schema{
				"cleaned_text": {Type: "string"},
				"category":     {Type: "string"},
			},
		},
		"BulkCommand": {
			Type:     "object",
			Required: []string{"project_id"},
			Properties: map[string]*openapi.Schema{
				"project_id": {Type: "string", Format: "uuid"},
			},
		},
		"Statistics": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"by_status":   {Type: "object", Description: "Note counts keyed by approval status"},
				"by_category": {Type: "object", Description: "Note counts keyed by category"},
				"per_day":     {Type: "object", Description: "Note counts keyed by date over the last 30 days"},
			},
		},
	}
}

func projectSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Project": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"name":       {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"CreateProjectCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name": {Type: "string"},
			},
		},
	}
}

func exportSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ArchiveRequest": {
			Type:     "object",
			Required: []string{"project_id", "format"},
			Properties: map[string]*openapi.Schema{
				"project_id": {Type: "string", Format: "uuid"},
				"category":   {Type: "string"},
				"format":     {Type: "string", Enum: []any{"markdown", "csv"}},
			},
		},
		"ArchiveResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":        {Type: "string", Description: "Blob storage key of the archived export"},
				"note_count": {Type: "integer"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
	}
}

func addNotePaths(spec *openapi.Spec) {
	ok := func(desc string) map[int]*openapi.Response {
		return map[int]*openapi.Response{
			200: openapi.ResponseJSON(desc, "Note"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		}
	}

	spec.Paths["/notes"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List notes",
			Tags:    []string{"notes"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("project_id", "string", "Filter by project", false),
				openapi.QueryParam("status", "string", "Filter by approval status", false),
				openapi.QueryParam("category", "string", "Filter by category", false),
				openapi.QueryParam("date_from", "string", "Inclusive lower date bound", false),
				openapi.QueryParam("date_to", "string", "Inclusive upper date bound", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated notes", "Note"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Submit raw text for classification",
			Tags:        []string{"notes"},
			RequestBody: openapi.RequestBodyJSON("SubmitCommand", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Classified notes", "SubmitResult"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/notes/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a note",
			Tags:       []string{"notes"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Note identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Note", "Note"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Edit a note's text and category",
			Tags:        []string{"notes"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Note identifier")},
			RequestBody: openapi.RequestBodyJSON("EditCommand", true),
			Responses:   ok("Updated note"),
		},
		Delete: &openapi.Operation{
			Summary:    "Permanently delete a rejected note",
			Tags:       []string{"notes"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Note identifier")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	transitions := []struct {
		path, summary string
		body          string
	}{
		{"/notes/{id}/approve", "Approve a pending note", "ApproveCommand"},
		{"/notes/{id}/reject", "Reject a pending note", ""},
		{"/notes/{id}/restore", "Restore a rejected note to pending", ""},
		{"/notes/{id}/reclassify", "Re-run classification on a pending note", ""},
	}
	for _, t := range transitions {
		op := &openapi.Operation{
			Summary:    t.summary,
			Tags:       []string{"notes"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Note identifier")},
			Responses:  ok("Updated note"),
		}
		if t.body != "" {
			op.RequestBody = openapi.RequestBodyJSON(t.body, false)
		}
		spec.Paths[t.path] = &openapi.PathItem{Post: op}
	}

	for _, bulk := range []string{"restore-all", "delete-all"} {
		spec.Paths[fmt.Sprintf("/notes/%s", bulk)] = &openapi.PathItem{
			Post: &openapi.Operation{
				Summary:     fmt.Sprintf("Apply %s to all rejected notes in a project", bulk),
				Tags:        []string{"notes"},
				RequestBody: openapi.RequestBodyJSON("BulkCommand", true),
				Responses: map[int]*openapi.Response{
					200: {Description: "Per-note batch results"},
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		}
	}

	spec.Paths["/notes/categories"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List the category catalog",
			Tags:    []string{"notes"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Category labels"},
			},
		},
	}

	spec.Paths["/notes/statistics"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Note statistics for a project",
			Tags:       []string{"notes"},
			Parameters: []*openapi.Parameter{openapi.QueryParam("project_id", "string", "Project identifier", true)},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Aggregated counts", "Statistics"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addProjectPaths(spec *openapi.Spec) {
	spec.Paths["/projects"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List projects",
			Tags:    []string{"projects"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated projects", "Project"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a project",
			Tags:        []string{"projects"},
			RequestBody: openapi.RequestBodyJSON("CreateProjectCommand", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created project", "Project"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/projects/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a project",
			Tags:       []string{"projects"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Project identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Project", "Project"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a project",
			Tags:       []string{"projects"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Project identifier")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addActionItemPaths(spec *openapi.Spec) {
	spec.Paths["/action-items/grouped"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Group approved action items into technical buckets",
			Tags:       []string{"action-items"},
			Parameters: []*openapi.Parameter{openapi.QueryParam("project_id", "string", "Project identifier", true)},
			Responses: map[int]*openapi.Response{
				200: {Description: "Bucketed action items with extracted assignees"},
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addExportPaths(spec *openapi.Spec) {
	spec.Paths["/exports/{format}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Download approved notes as markdown or CSV",
			Tags:    []string{"exports"},
			Parameters: []*openapi.Parameter{
				{Name: "format", In: "path", Required: true, Schema: &openapi.Schema{Type: "string", Enum: []any{"markdown", "csv"}}},
				openapi.QueryParam("project_id", "string", "Project identifier", false),
				openapi.QueryParam("category", "string", "Restrict to a single category", false),
			},
			Responses: map[int]*openapi.Response{
				200: {Description: "Rendered export document"},
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/exports/archive"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Archive an export to blob storage",
			Tags:        []string{"exports"},
			RequestBody: openapi.RequestBodyJSON("ArchiveRequest", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Archived export", "ArchiveResult"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}
