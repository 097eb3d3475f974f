package middlewares

import (
	"healthmate-service/internal/pkg/constvars"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitByActor limits authenticated traffic per account, falling back
// to the client IP when no actor is present.
func (m *Middlewares) RateLimitByActor() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(keyByActor),
	)
}

func keyByActor(r *http.Request) (string, error) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		return httprate.KeyByIP(r)
	}
	return string(constvars.CONTEXT_ACTOR_KEY) + ":" + actor.AccountID, nil
}
