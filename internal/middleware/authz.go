package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"

	"go-cms-app/internal/data"
	"go-cms-app/internal/service"
	"go-cms-app/internal/session"
)

// Authorizer creates a new middleware for authorization. It resolves the
// acting identity from the session, stores it in the request context, and
// enforces the route-level role policy with casbin. Ownership rules are the
// service layer's concern; this gate only decides which role may reach which
// route.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := service.Actor{
				ID:       int64(sm.GetInt(r.Context(), session.KeyUserID)),
				Username: sm.GetString(r.Context(), session.KeyUsername),
				Role:     data.Role(sm.GetString(r.Context(), session.KeyRole)),
			}
			r = r.WithContext(SetActor(r.Context(), actor))

			subject := RoleSubject(actor.Role)
			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Authorization error.")
				return
			}
			if !allowed {
				// An anonymous caller is told to authenticate; an
				// authenticated one is told it lacks privilege.
				if actor.Anonymous() {
					writeError(w, http.StatusUnauthorized, "Not authenticated.")
				} else {
					writeError(w, http.StatusForbidden, "Insufficient privileges to complete the requested operation.")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
