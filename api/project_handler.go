package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/directory"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/listing"
	"github.com/techschool/student-showcase-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *directory.ProjectDirectory
}

func newProjectHandler(projects *directory.ProjectDirectory) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// ProjectCollection is the listing response shape.
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// listProjects serves the portfolio listing from the in-memory directory,
// filtered and sorted by the query parameters: search, category, sort
// (latest|oldest|date) and date.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		state := listing.State{
			Search:   q.Get("search"),
			Category: q.Get("category"),
			Sort:     q.Get("sort"),
			Date:     q.Get("date"),
		}

		projects := listing.Apply(h.projects.Projects(), state)

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// createProject validates the draft and hands it to the directory; the
// directory normalizes defaults and re-fetches the collection afterwards.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.Project
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := validateProjectDraft(draft); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		if !h.projects.Create(draft) {
			h.responder.WriteError(w, errs.NewInternalError("failed to create project"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteMessage(w, "Project created successfully!")
	}
}

// updateProject applies a partial update: only the supplied fields are sent
// to the store.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		fields := projectUpdateFields(body)
		if len(fields) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no updatable fields supplied"))
			return
		}

		if !h.containsProject(projectID) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if !h.projects.Update(projectID, fields) {
			h.responder.WriteError(w, errs.NewInternalError("failed to update project"))
			return
		}

		h.responder.WriteMessage(w, "Project updated successfully!")
	}
}

// deleteProject removes a project permanently.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.containsProject(projectID) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if !h.projects.Delete(projectID) {
			h.responder.WriteError(w, errs.NewInternalError("failed to delete project"))
			return
		}

		h.responder.WriteMessage(w, "Project deleted successfully!")
	}
}

func (h projectHandler) containsProject(id uuid.UUID) bool {
	for _, p := range h.projects.Projects() {
		if p.ID == id {
			return true
		}
	}
	return false
}

func validateProjectDraft(draft models.Project) error {
	return validation.ValidateStruct(&draft,
		validation.Field(&draft.StudentName, validation.Required),
		validation.Field(&draft.ProjectTitle, validation.Required),
		validation.Field(&draft.Category, validation.Required, validation.In(categoryValues()...)),
	)
}

func categoryValues() []any {
	values := make([]any, len(models.Categories))
	for i, c := range models.Categories {
		values[i] = c
	}
	return values
}

// projectUpdateFields whitelists the columns a partial update may touch and
// coerces JSON arrays into the stored tag type.
func projectUpdateFields(body map[string]any) map[string]any {
	allowed := map[string]bool{
		"student_name":             true,
		"project_title":            true,
		"description":              true,
		"category":                 true,
		"tools_technologies":       true,
		"main_project_image":       true,
		"linkedin_link":            true,
		"linkedin_profile_picture": true,
		"github_link":              true,
		"live_project_link":        true,
		"project_video":            true,
		"likes_count":              true,
		"comments_count":           true,
	}

	fields := make(map[string]any, len(body))
	for key, value := range body {
		if !allowed[key] {
			continue
		}
		if key == "tools_technologies" {
			fields[key] = toStringArray(value)
			continue
		}
		fields[key] = value
	}
	return fields
}

func toStringArray(value any) pq.StringArray {
	items, ok := value.([]any)
	if !ok {
		return pq.StringArray{}
	}
	arr := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			arr = append(arr, s)
		}
	}
	return arr
}

// parseIDParam reads and parses a uuid path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
