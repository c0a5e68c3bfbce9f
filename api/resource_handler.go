package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 1 << 20 // 1MB

// store is the data access every content repo provides
type store[T any, P any] interface {
	FindAll() ([]*T, error)
	FindByID(id uuid.UUID) (*T, error)
	Add(row *T) error
	Update(id uuid.UUID, patch P) (*T, error)
	Delete(id uuid.UUID) (bool, error)
}

// resourceHandler serves list, get, create, update and delete for one
// entity. C is the create payload and P the partial update payload.
type resourceHandler[T any, C any, P any] struct {
	responder Responder
	logger    zerolog.Logger
	entity    string
	store     store[T, P]
	build     func(C) T
	created   func(T)
}

func newResourceHandler[T any, C any, P any](entity string, s store[T, P], build func(C) T) resourceHandler[T, C, P] {
	logger := log.With().Str("handlerName", entity+"Handler").Logger()

	return resourceHandler[T, C, P]{
		responder: NewResponder(logger),
		logger:    logger,
		entity:    entity,
		store:     s,
		build:     build,
	}
}

// onCreate registers a hook that runs after a row is stored
func (h resourceHandler[T, C, P]) onCreate(hook func(T)) resourceHandler[T, C, P] {
	h.created = hook
	return h
}

func (h resourceHandler[T, C, P]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", h.entity+" list", err))
			return
		}
		h.responder.WriteJSON(w, rows)
	}
}

func (h resourceHandler[T, C, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		row, err := h.store.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", h.entity, err))
			return
		}
		if row == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

func (h resourceHandler[T, C, P]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if !h.decode(w, r, &in) {
			return
		}

		row := h.build(in)
		if err := h.store.Add(&row); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", h.entity, err))
			return
		}

		if h.created != nil {
			h.created(row)
		}
		h.responder.WriteCreated(w, row)
	}
}

func (h resourceHandler[T, C, P]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		var patch P
		if !h.decode(w, r, &patch) {
			return
		}

		row, err := h.store.Update(id, patch)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", h.entity, err))
			return
		}
		if row == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

func (h resourceHandler[T, C, P]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		removed, err := h.store.Delete(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", h.entity, err))
			return
		}
		if !removed {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// pathID parses the {id} URL parameter. Anything that is not a UUID cannot
// name a row, so it is answered with 404.
func (h resourceHandler[T, C, P]) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.responder.WriteError(w, errs.NewNotFound(h.entity))
		return uuid.Nil, false
	}
	return id, true
}

func (h resourceHandler[T, C, P]) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := readBody(w, r)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read request body")
		h.responder.WriteError(w, err)
		return false
	}

	if err := validation.Decode(body, h.entity, dst); err != nil {
		h.logger.Debug().Err(err).Msg("Rejected request body")
		h.responder.WriteError(w, err)
		return false
	}
	return true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxBodySize)
		}
		return nil, errs.NewBadRequestError("failed to read request body")
	}
	return body, nil
}
