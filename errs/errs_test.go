package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		is     func(error) bool
		status int
		msg    string
	}{
		{"not found", NewNotFound("project"), IsNotFound, http.StatusNotFound, "project not found"},
		{"forbidden", NewForbiddenError("nope"), IsForbidden, http.StatusForbidden, "nope"},
		{"bad request", NewBadRequestError("bad"), IsBadRequest, http.StatusBadRequest, "bad"},
		{"unauthorized", NewUnauthorizedError("who"), IsUnauthorized, http.StatusUnauthorized, "who"},
		{"admin exists", NewAdminExistsError(), IsAdminExistsError, http.StatusForbidden, "Admin already exists"},
		{"validation", NewValidationError("project", []FieldViolation{{Field: "title", Message: "is required"}}), IsValidationError, http.StatusBadRequest, "invalid project data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.Equal(t, tt.status, StatusOf(tt.err))

			var apiErr *ApiErr
			assert.True(t, errors.As(tt.err, &apiErr))
			assert.Equal(t, tt.msg, apiErr.Message())
		})
	}
}

func TestDatabaseErrorsAreAlways500(t *testing.T) {
	tests := []struct {
		cause error
		is    func(error) bool
	}{
		{errors.New(`ERROR: duplicate key value violates unique constraint "users_username_key"`), IsUniqueConstraintViolationError},
		{errors.New(`ERROR: insert or update on table "projects" violates foreign key constraint`), IsForeignKeyConstraintError},
		{errors.New("failed to connect: connection refused"), IsDatabaseConnectionError},
	}

	for _, tt := range tests {
		err := NewDatabaseError("create", "project", tt.cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.True(t, tt.is(err), tt.cause.Error())
		assert.Contains(t, err.GetFullError(), tt.cause.Error())
	}
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestValidationErrorField(t *testing.T) {
	single := NewValidationError("contact", []FieldViolation{{Field: "email", Message: "must be a valid email address"}})
	assert.Equal(t, "email", single.Field)
	assert.Equal(t, "invalid contact data: email must be a valid email address", single.Error())

	multi := NewValidationError("contact", []FieldViolation{{Field: "name"}, {Field: "email"}})
	assert.Empty(t, multi.Field)
	assert.Len(t, multi.Violations, 2)
}
