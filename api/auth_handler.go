package api

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/auth"
	"github.com/techschool/student-showcase-backend/errs"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	gate      *auth.Gate
	tokens    auth.TokenStore
}

func newAuthHandler(gate *auth.Gate, tokens auth.TokenStore) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gate:      gate,
		tokens:    tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req loginRequest) validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

// login runs the credential check through the gate. Unknown email and wrong
// password get the same generic response.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		if !h.gate.Login(req.Email, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError(auth.InvalidCredentialsMessage))
			return
		}

		token, _ := h.tokens.Read()
		h.responder.WriteJSON(w, map[string]any{
			"status":  "success",
			"message": "Login successful!",
			"token":   token,
			"session": h.gate.Session(),
		})
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.gate.Logout()
		h.responder.WriteMessage(w, "Logged out successfully")
	}
}

func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.gate.Session())
	}
}
