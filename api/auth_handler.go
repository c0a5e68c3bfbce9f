package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    *auth.Issuer
}

func newAuthHandler(userRepo *database.UserRepo, issuer *auth.Issuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

func (h authHandler) adminExists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := h.userRepo.AdminExists()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("check", "admin", err))
			return
		}
		h.responder.WriteJSON(w, exists)
	}
}

// login answers unknown users and wrong passwords with the same 401
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := h.readCredentials(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.Authenticate(creds.Username, creds.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("authenticate", "user", err))
			return
		}
		if user == nil {
			h.logger.Info().Msg("Rejected login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, expiresAt, err := h.issuer.Issue(user.ID, user.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}
		h.responder.WriteJSON(w, TokenResponse{Token: token, ExpiresAt: expiresAt})
	}
}

// register creates the one admin account. Once any user exists it refuses
// with 403 before looking at the body.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := h.userRepo.AdminExists()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("check", "admin", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewAdminExistsError())
			return
		}

		creds, err := h.readCredentials(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Username and password required"))
			return
		}

		user, err := h.userRepo.RegisterAdmin(creds.Username, creds.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Str("userId", user.ID.String()).Msg("Registered admin")
		h.responder.WriteCreated(w, UserResponse{ID: user.ID, Username: user.Username})
	}
}

// logout keeps no server state; the client drops its token
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteNoContent(w)
	}
}

// whoami runs behind authMiddleware.authenticate
func (h authHandler) whoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}
		h.responder.WriteJSON(w, UserResponse{ID: user.ID, Username: user.Username})
	}
}

func (h authHandler) readCredentials(w http.ResponseWriter, r *http.Request) (models.Credentials, error) {
	var creds models.Credentials
	body, err := readBody(w, r)
	if err != nil {
		return creds, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return creds, nil
	}
	if err := json.Unmarshal(body, &creds); err != nil {
		return creds, errs.NewInvalidJSONError(err)
	}
	return creds, nil
}
