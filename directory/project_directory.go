// Package directory owns the in-memory record lists served to the listing
// pages. Every mutation goes through the store and then re-fetches the full
// collection, so the cache is always exactly what the store holds after the
// round trip. Store failures never escape as errors: callers get a boolean
// outcome and the failure is logged as a user-visible notice.
package directory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
)

// ProjectStore is the slice of the data store the project directory needs.
type ProjectStore interface {
	FindAll() ([]models.Project, error)
	Insert(project *models.Project) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	Delete(id uuid.UUID) error
}

type ProjectDirectory struct {
	mu       sync.RWMutex
	store    ProjectStore
	logger   zerolog.Logger
	projects []models.Project
}

func NewProjectDirectory(store ProjectStore) *ProjectDirectory {
	logger := log.With().Str("serviceName", "projectDirectory").Logger()
	return &ProjectDirectory{store: store, logger: logger}
}

// LoadAll fetches the full projects collection, newest first, normalizes
// defaults on every record and replaces the cached list. On failure the
// prior list is kept untouched and the error is returned.
func (d *ProjectDirectory) LoadAll() error {
	projects, err := d.store.FindAll()
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to load projects")
		return err
	}

	for i := range projects {
		projects[i].ApplyDefaults()
	}

	d.mu.Lock()
	d.projects = projects
	d.mu.Unlock()
	return nil
}

// Projects returns a snapshot copy of the cached list. This is the only
// read path for listing pages.
func (d *ProjectDirectory) Projects() []models.Project {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make([]models.Project, len(d.projects))
	copy(snapshot, d.projects)
	return snapshot
}

// Create normalizes the draft, inserts it, then unconditionally re-fetches
// the whole collection so the id and timestamp assigned by the store are
// reflected. The assigned id is never assumed without the refetch.
func (d *ProjectDirectory) Create(draft models.Project) bool {
	draft.ID = uuid.Nil
	draft.LikesCount = 0
	draft.CommentsCount = 0
	draft.ApplyDefaults()

	if err := d.store.Insert(&draft); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to create project")
		return false
	}

	// reload failures are logged by LoadAll; the insert itself succeeded
	_ = d.LoadAll()
	d.logger.Info().Str("projectTitle", draft.ProjectTitle).Msg("Project created successfully")
	return true
}

// Update sends only the supplied fields to the store, then re-fetches.
func (d *ProjectDirectory) Update(id uuid.UUID, fields map[string]any) bool {
	if err := d.store.UpdateFields(id, fields); err != nil {
		if errs.IsNotFound(err) {
			_ = d.LoadAll()
		}
		d.logger.Warn().Err(err).Str("projectID", id.String()).Msg("Failed to update project")
		return false
	}

	_ = d.LoadAll()
	d.logger.Info().Str("projectID", id.String()).Msg("Project updated successfully")
	return true
}

// Delete removes a project by id, then re-fetches. Deleting an id the store
// does not hold reports failure; the reload leaves the list unchanged.
func (d *ProjectDirectory) Delete(id uuid.UUID) bool {
	if err := d.store.Delete(id); err != nil {
		if errs.IsNotFound(err) {
			_ = d.LoadAll()
		}
		d.logger.Warn().Err(err).Str("projectID", id.String()).Msg("Failed to delete project")
		return false
	}

	_ = d.LoadAll()
	d.logger.Info().Str("projectID", id.String()).Msg("Project deleted successfully")
	return true
}
