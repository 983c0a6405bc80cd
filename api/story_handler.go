package api

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/directory"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/listing"
	"github.com/techschool/student-showcase-backend/models"
)

type storyHandler struct {
	responder Responder
	logger    zerolog.Logger
	stories   *directory.StoryDirectory
}

func newStoryHandler(stories *directory.StoryDirectory) storyHandler {
	logger := log.With().Str("handlerName", "storyHandler").Logger()

	return storyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		stories:   stories,
	}
}

// StoryCollection is the listing response shape.
type StoryCollection struct {
	Stories []models.SuccessStory `json:"stories"`
	Total   int                   `json:"total"`
}

// listStories serves the success-story listing, optionally filtered by the
// `type` query parameter (achievement type, "all" passes everything).
func (h storyHandler) listStories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stories := listing.FilterStories(h.stories.Stories(), r.URL.Query().Get("type"))

		h.responder.WriteJSON(w, StoryCollection{
			Stories: stories,
			Total:   len(stories),
		})
	}
}

func (h storyHandler) createStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.SuccessStory
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode story request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := validateStoryDraft(draft); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		if !h.stories.Create(draft) {
			h.responder.WriteError(w, errs.NewInternalError("failed to create success story"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteMessage(w, "Success story created successfully!")
	}
}

func (h storyHandler) updateStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := parseIDParam(r, "storyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode story request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		fields := storyUpdateFields(body)
		if len(fields) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no updatable fields supplied"))
			return
		}

		if !h.containsStory(storyID) {
			h.responder.WriteError(w, errs.NewNotFoundError("success story not found"))
			return
		}

		if !h.stories.Update(storyID, fields) {
			h.responder.WriteError(w, errs.NewInternalError("failed to update success story"))
			return
		}

		h.responder.WriteMessage(w, "Success story updated successfully!")
	}
}

func (h storyHandler) deleteStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := parseIDParam(r, "storyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.containsStory(storyID) {
			h.responder.WriteError(w, errs.NewNotFoundError("success story not found"))
			return
		}

		if !h.stories.Delete(storyID) {
			h.responder.WriteError(w, errs.NewInternalError("failed to delete success story"))
			return
		}

		h.responder.WriteMessage(w, "Success story deleted successfully!")
	}
}

func (h storyHandler) containsStory(id uuid.UUID) bool {
	for _, s := range h.stories.Stories() {
		if s.ID == id {
			return true
		}
	}
	return false
}

func validateStoryDraft(draft models.SuccessStory) error {
	return validation.ValidateStruct(&draft,
		validation.Field(&draft.StudentName, validation.Required),
		validation.Field(&draft.Title, validation.Required),
		validation.Field(&draft.Content, validation.Required),
		validation.Field(&draft.AchievementType, validation.In(achievementValues()...)),
	)
}

func achievementValues() []any {
	values := make([]any, len(models.AchievementTypes))
	for i, t := range models.AchievementTypes {
		values[i] = t
	}
	return values
}

func storyUpdateFields(body map[string]any) map[string]any {
	allowed := map[string]bool{
		"student_name":     true,
		"title":            true,
		"content":          true,
		"company":          true,
		"position":         true,
		"linkedin_link":    true,
		"achievement_type": true,
		"student_image":    true,
	}

	fields := make(map[string]any, len(body))
	for key, value := range body {
		if allowed[key] {
			fields[key] = value
		}
	}
	return fields
}
