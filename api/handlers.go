package api

import (
	"github.com/techschool/student-showcase-backend/auth"
	"github.com/techschool/student-showcase-backend/directory"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(projects *directory.ProjectDirectory, stories *directory.StoryDirectory, gate *auth.Gate, tokens auth.TokenStore) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(projects),
		storyHandler:   newStoryHandler(stories),
		authHandler:    newAuthHandler(gate, tokens),
	}
}
