package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techschool/student-showcase-backend/auth"
	"github.com/techschool/student-showcase-backend/directory"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
)

type fakeProjectStore struct {
	projects []models.Project
	clock    time.Time
}

func (s *fakeProjectStore) FindAll() ([]models.Project, error) {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (s *fakeProjectStore) Insert(project *models.Project) error {
	s.clock = s.clock.Add(time.Hour)
	project.ID = uuid.New()
	project.CreatedAt = s.clock
	s.projects = append(s.projects, *project)
	return nil
}

func (s *fakeProjectStore) UpdateFields(id uuid.UUID, fields map[string]any) error {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if title, ok := fields["project_title"].(string); ok {
			s.projects[i].ProjectTitle = title
		}
		return nil
	}
	return fmt.Errorf("project %w", errs.ErrNotFound)
}

func (s *fakeProjectStore) Delete(id uuid.UUID) error {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %w", errs.ErrNotFound)
}

type fakeStoryStore struct {
	stories []models.SuccessStory
	clock   time.Time
}

func (s *fakeStoryStore) FindAll() ([]models.SuccessStory, error) {
	out := make([]models.SuccessStory, len(s.stories))
	copy(out, s.stories)
	return out, nil
}

func (s *fakeStoryStore) Insert(story *models.SuccessStory) error {
	s.clock = s.clock.Add(time.Hour)
	story.ID = uuid.New()
	story.CreatedAt = s.clock
	s.stories = append(s.stories, *story)
	return nil
}

func (s *fakeStoryStore) UpdateFields(id uuid.UUID, fields map[string]any) error {
	for i := range s.stories {
		if s.stories[i].ID == id {
			return nil
		}
	}
	return fmt.Errorf("success story %w", errs.ErrNotFound)
}

func (s *fakeStoryStore) Delete(id uuid.UUID) error {
	for i := range s.stories {
		if s.stories[i].ID == id {
			s.stories = append(s.stories[:i], s.stories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("success story %w", errs.ErrNotFound)
}

type fakeAdminStore struct {
	admins []models.Admin
	err    error
}

func (s *fakeAdminStore) FindByEmail(email string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.admins {
		if s.admins[i].Email == email {
			return &s.admins[i], nil
		}
	}
	return nil, nil
}

func (s *fakeAdminStore) FindByID(id uuid.UUID) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.admins {
		if s.admins[i].ID == id {
			return &s.admins[i], nil
		}
	}
	return nil, nil
}

type memTokenStore struct {
	token string
}

func (s *memTokenStore) Read() (string, bool) { return s.token, s.token != "" }
func (s *memTokenStore) Write(token string) error {
	s.token = token
	return nil
}
func (s *memTokenStore) Clear() error {
	s.token = ""
	return nil
}

type testEnv struct {
	router *chi.Mux
	admin  models.Admin
	viewer models.Admin
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	admin := models.Admin{
		ID:           uuid.New(),
		Username:     "admin",
		Email:        "admin@techschool.com",
		PasswordHash: "admin@123",
		Role:         models.RoleAdmin,
	}
	viewer := models.Admin{
		ID:           uuid.New(),
		Username:     "viewer",
		Email:        "viewer@techschool.com",
		PasswordHash: "viewer@123",
		Role:         "viewer",
	}
	admins := &fakeAdminStore{admins: []models.Admin{admin, viewer}}

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	projects := directory.NewProjectDirectory(&fakeProjectStore{clock: clock})
	stories := directory.NewStoryDirectory(&fakeStoryStore{clock: clock})
	tokens := &memTokenStore{}
	gate := auth.NewGate(admins, tokens)

	return testEnv{
		router: newRouter(admins, projects, stories, gate, tokens),
		admin:  admin,
		viewer: viewer,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e testEnv) createProject(t *testing.T, title, student, category string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/project", map[string]any{
		"student_name":  student,
		"project_title": title,
		"category":      category,
	}, e.admin.ID.String())
	require.Equal(t, http.StatusCreated, rec.Code)
}

func decodeProjects(t *testing.T, rec *httptest.ResponseRecorder) ProjectCollection {
	t.Helper()
	var collection ProjectCollection
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&collection))
	return collection
}

func TestListProjectsWithFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createProject(t, "Bot", "Alice", "Automation")
	env.createProject(t, "Shop", "Bob", "Web Application")

	rec := env.do(t, http.MethodGet, "/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeProjects(t, rec)
	require.Equal(t, 2, all.Total)
	assert.Equal(t, "Shop", all.Projects[0].ProjectTitle)

	rec = env.do(t, http.MethodGet, "/projects?category=Automation", nil, "")
	filtered := decodeProjects(t, rec)
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "Bot", filtered.Projects[0].ProjectTitle)

	rec = env.do(t, http.MethodGet, "/projects?search=sho", nil, "")
	searched := decodeProjects(t, rec)
	require.Equal(t, 1, searched.Total)
	assert.Equal(t, "Shop", searched.Projects[0].ProjectTitle)

	rec = env.do(t, http.MethodGet, "/projects?sort=oldest", nil, "")
	oldest := decodeProjects(t, rec)
	assert.Equal(t, "Bot", oldest.Projects[0].ProjectTitle)
}

func TestCreateProjectRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{
		"student_name":  "Alice",
		"project_title": "Bot",
		"category":      "Automation",
	}

	rec := env.do(t, http.MethodPost, "/project", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/project", body, uuid.New().String())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// authenticated but not an admin
	rec = env.do(t, http.MethodPost, "/project", body, env.viewer.ID.String())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing title", body: map[string]any{"student_name": "Alice", "category": "Automation"}},
		{name: "missing student", body: map[string]any{"project_title": "Bot", "category": "Automation"}},
		{name: "unknown category", body: map[string]any{"student_name": "Alice", "project_title": "Bot", "category": "Mobile"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/project", tc.body, env.admin.ID.String())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// nothing was persisted
	rec := env.do(t, http.MethodGet, "/projects", nil, "")
	assert.Equal(t, 0, decodeProjects(t, rec).Total)
}

func TestUpdateProjectPartial(t *testing.T) {
	env := newTestEnv(t)
	env.createProject(t, "Bot", "Alice", "Automation")

	rec := env.do(t, http.MethodGet, "/projects", nil, "")
	id := decodeProjects(t, rec).Projects[0].ID

	rec = env.do(t, http.MethodPut, "/project/"+id.String(), map[string]any{"project_title": "Better Bot"}, env.admin.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/projects", nil, "")
	got := decodeProjects(t, rec)
	assert.Equal(t, "Better Bot", got.Projects[0].ProjectTitle)
	assert.Equal(t, "Alice", got.Projects[0].StudentName)

	// unknown columns are not updatable
	rec = env.do(t, http.MethodPut, "/project/"+id.String(), map[string]any{"nonsense": true}, env.admin.ID.String())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProject(t *testing.T) {
	env := newTestEnv(t)
	env.createProject(t, "Bot", "Alice", "Automation")

	rec := env.do(t, http.MethodDelete, "/project/"+uuid.New().String(), nil, env.admin.ID.String())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/projects", nil, "")
	projects := decodeProjects(t, rec)
	require.Equal(t, 1, projects.Total)

	rec = env.do(t, http.MethodDelete, "/project/"+projects.Projects[0].ID.String(), nil, env.admin.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/projects", nil, "")
	assert.Equal(t, 0, decodeProjects(t, rec).Total)
}

func TestSuccessStoryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/success-story", map[string]any{
		"student_name":     "Maria",
		"title":            "Hired at TechCorp",
		"content":          "From bootcamp to backend engineer.",
		"achievement_type": "job_placement",
	}, env.admin.ID.String())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/success-stories?type=job_placement", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stories StoryCollection
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stories))
	require.Equal(t, 1, stories.Total)
	assert.Equal(t, models.AvatarFor("Maria"), stories.Stories[0].StudentImage)

	rec = env.do(t, http.MethodGet, "/success-stories?type=promotion", nil, "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stories))
	assert.Equal(t, 0, stories.Total)

	// missing content is rejected before any store call
	rec = env.do(t, http.MethodPost, "/success-story", map[string]any{
		"student_name": "Maria",
		"title":        "Hired",
	}, env.admin.ID.String())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/login", map[string]any{
		"email":    env.admin.Email,
		"password": "admin@123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token   string       `json:"token"`
		Session auth.Session `json:"session"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, env.admin.ID.String(), resp.Token)
	assert.True(t, resp.Session.Authenticated)
	assert.True(t, resp.Session.IsAdmin)

	rec = env.do(t, http.MethodGet, "/session", nil, "")
	var session auth.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.True(t, session.Authenticated)

	rec = env.do(t, http.MethodPost, "/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/session", nil, "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.False(t, session.Authenticated)
}

func TestLoginRejectionsLookAlike(t *testing.T) {
	env := newTestEnv(t)

	wrongPassword := env.do(t, http.MethodPost, "/login", map[string]any{
		"email":    env.admin.Email,
		"password": "wrong",
	}, "")
	unknownEmail := env.do(t, http.MethodPost, "/login", map[string]any{
		"email":    "nobody@x.com",
		"password": "admin@123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// same generic body for both, no account enumeration
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	admins := &fakeAdminStore{err: errors.New("connection refused")}
	projects := directory.NewProjectDirectory(&fakeProjectStore{})
	stories := directory.NewStoryDirectory(&fakeStoryStore{})
	tokens := &memTokenStore{}
	gate := auth.NewGate(admins, tokens)
	router := newRouter(admins, projects, stories, gate, tokens)

	req := httptest.NewRequest(http.MethodDelete, "/project/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", "Bearer "+uuid.New().String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
