package directory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
)

// StoryStore is the slice of the data store the story directory needs.
type StoryStore interface {
	FindAll() ([]models.SuccessStory, error)
	Insert(story *models.SuccessStory) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	Delete(id uuid.UUID) error
}

// StoryDirectory follows the same replace-on-mutate discipline as
// ProjectDirectory for the success_stories collection.
type StoryDirectory struct {
	mu      sync.RWMutex
	store   StoryStore
	logger  zerolog.Logger
	stories []models.SuccessStory
}

func NewStoryDirectory(store StoryStore) *StoryDirectory {
	logger := log.With().Str("serviceName", "storyDirectory").Logger()
	return &StoryDirectory{store: store, logger: logger}
}

// LoadAll fetches the full collection, normalizes defaults and replaces the
// cache; on failure the prior list is kept.
func (d *StoryDirectory) LoadAll() error {
	stories, err := d.store.FindAll()
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to load success stories")
		return err
	}

	for i := range stories {
		stories[i].ApplyDefaults()
	}

	d.mu.Lock()
	d.stories = stories
	d.mu.Unlock()
	return nil
}

// Stories returns a snapshot copy of the cached list.
func (d *StoryDirectory) Stories() []models.SuccessStory {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make([]models.SuccessStory, len(d.stories))
	copy(snapshot, d.stories)
	return snapshot
}

// Create normalizes the draft, inserts it and re-fetches the collection.
func (d *StoryDirectory) Create(draft models.SuccessStory) bool {
	draft.ID = uuid.Nil
	draft.ApplyDefaults()

	if err := d.store.Insert(&draft); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to create success story")
		return false
	}

	_ = d.LoadAll()
	d.logger.Info().Str("storyTitle", draft.Title).Msg("Success story created successfully")
	return true
}

// Update sends only the supplied fields to the store, then re-fetches.
func (d *StoryDirectory) Update(id uuid.UUID, fields map[string]any) bool {
	if err := d.store.UpdateFields(id, fields); err != nil {
		if errs.IsNotFound(err) {
			_ = d.LoadAll()
		}
		d.logger.Warn().Err(err).Str("storyID", id.String()).Msg("Failed to update success story")
		return false
	}

	_ = d.LoadAll()
	d.logger.Info().Str("storyID", id.String()).Msg("Success story updated successfully")
	return true
}

// Delete removes a story by id, then re-fetches.
func (d *StoryDirectory) Delete(id uuid.UUID) bool {
	if err := d.store.Delete(id); err != nil {
		if errs.IsNotFound(err) {
			_ = d.LoadAll()
		}
		d.logger.Warn().Err(err).Str("storyID", id.String()).Msg("Failed to delete success story")
		return false
	}

	_ = d.LoadAll()
	d.logger.Info().Str("storyID", id.String()).Msg("Success story deleted successfully")
	return true
}
