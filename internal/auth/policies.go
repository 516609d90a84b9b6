package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"go-cms-app/internal/logger"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each policy exists before adding it,
// making the operation idempotent and safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous callers see the front office; the user role manages its
	// own pages; admin additionally manages the app config and the user
	// directory. Ownership within a route is enforced by the services.
	policies := [][]string{
		// Front office and login.
		{"anonymous", "/api/published-pages", "GET"},
		{"anonymous", "/api/pages/:id", "GET"},
		{"anonymous", "/api/config", "GET"},
		{"anonymous", "/api/sessions", "POST"},
		{"anonymous", "/api/sessions/current", "GET"},
		{"anonymous", "/static/*", "GET"},

		// Back office page authoring.
		{"user", "/api/pages", "GET"},
		{"user", "/api/pages", "POST"},
		{"user", "/api/pages/:id", "PUT"},
		{"user", "/api/pages/:id", "DELETE"},
		{"user", "/api/images", "GET"},
		{"user", "/api/sessions/current", "DELETE"},

		// Administration.
		{"admin", "/api/config", "PUT"},
		{"admin", "/api/users", "GET"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Role hierarchy: user inherits anonymous, admin inherits user.
	roles := [][2]string{
		{"user", "anonymous"},
		{"admin", "user"},
	}
	for _, pair := range roles {
		if has, _ := e.HasRoleForUser(pair[0], pair[1]); !has {
			if _, err := e.AddRoleForUser(pair[0], pair[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %s -> %s", pair[0], pair[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
