package session

import (
	"context"
	"net/http"
)

// Manager is an interface that abstracts the session management
// implementation. This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	GetInt(ctx context.Context, key string) int
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
}

// Keys under which the logged-in identity is stored.
const (
	KeyUserID   = "user_id"
	KeyUsername = "user_username"
	KeyRole     = "user_role"
)
