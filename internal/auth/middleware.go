package auth

import (
	"context"
	"net/http"

	"eventhub/internal/models"
)

type contextKey string

const (
	subjectKey contextKey = "subject"
	actorKey   contextKey = "actor"
)

// Middleware verifies the bearer token and hangs the caller's identity on
// the request context. The subject is always set for a valid token; the
// full actor (id + role) is set once the role resolves, either from the
// token's role claim or through the role cache. Requests from identities
// that have not registered a profile yet still pass with just a subject,
// so the register endpoint can work.
func Middleware(secret []byte, roles *RoleCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(rawToken, secret)
			if err != nil {
				http.Error(w, "invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)

			role := models.Role(claims.Role)
			if !role.Valid() && roles != nil {
				if resolved, err := roles.Resolve(ctx, claims.Subject); err == nil {
					role = resolved
				}
			}
			if role.Valid() {
				ctx = context.WithValue(ctx, actorKey, models.Actor{ID: claims.Subject, Role: role})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the verified token subject.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey).(string)
	return sub, ok && sub != ""
}

// ActorFromContext returns the caller's identity and role.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(models.Actor)
	return actor, ok
}

// WithActor is a test helper that injects a caller into a context.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	ctx = context.WithValue(ctx, subjectKey, actor.ID)
	return context.WithValue(ctx, actorKey, actor)
}
