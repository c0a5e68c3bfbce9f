package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const (
	userIDKey   keyType = "userID"
	usernameKey keyType = "username"
)

// ctxWithUserID adds the authenticated user to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

// ctxGetUserID retrieves the authenticated user ID from the context
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	if ctxValue := ctx.Value(userIDKey); ctxValue == nil {
		return uuid.Nil, errors.New("key not found in context")
	} else if userID, ok := ctxValue.(uuid.UUID); !ok {
		return uuid.Nil, errors.New("value is not of type `uuid.UUID`")
	} else {
		return userID, nil
	}
}

func ctxGetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
