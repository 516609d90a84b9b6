package middleware

import (
	"context"

	"go-cms-app/internal/data"
	"go-cms-app/internal/service"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const actorContextKey = contextKey("actor")

// GetActor retrieves the acting identity from the request context. The
// anonymous actor is returned when none was set.
func GetActor(ctx context.Context) service.Actor {
	if actor, ok := ctx.Value(actorContextKey).(service.Actor); ok {
		return actor
	}
	return service.Actor{}
}

// SetActor adds the acting identity to the request context.
func SetActor(ctx context.Context, actor service.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// RoleSubject maps a role to the casbin subject name used in policies.
// Anonymous callers carry no role.
func RoleSubject(role data.Role) string {
	if role == "" {
		return "anonymous"
	}
	return string(role)
}
