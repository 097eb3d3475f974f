package middlewares

import (
	"context"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"healthmate-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token and stores the actor in the request
// context. Role comes from the token only.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		actor, err := utils.ParseActorJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		m.Log.Debug("Middlewares.Authenticate actor established",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, actor.AccountID),
			zap.String(constvars.LoggingRoleKey, actor.Role.String()),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ACTOR_KEY, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the actor set by Authenticate.
func ActorFromContext(ctx context.Context) (models.Actor, error) {
	actor, ok := ctx.Value(constvars.CONTEXT_ACTOR_KEY).(models.Actor)
	if !ok || actor.AccountID == "" {
		return models.Actor{}, exceptions.ErrActorMissing(nil)
	}
	return actor, nil
}
