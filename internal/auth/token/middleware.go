package token

import (
	"net/http"
	"strings"

	"github.com/veriscan/veriscan-backend/pkg/apikey"
	"github.com/veriscan/veriscan-backend/pkg/errors"
	"github.com/veriscan/veriscan-backend/pkg/httputil"
	"github.com/veriscan/veriscan-backend/pkg/logger"
)

// Middleware authenticates incoming requests. Two caller kinds are accepted:
// operators present a Bearer JWT, machine clients present an X-API-Key header
// alongside X-Client-ID.
type Middleware struct {
	tokens *Manager
	keys   *apikey.Checker
	log    *logger.Logger
}

// NewMiddleware creates the auth middleware
func NewMiddleware(tokens *Manager, keys *apikey.Checker, log *logger.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		keys:   keys,
		log:    log.WithComponent("auth"),
	}
}

// Authenticate validates the request credentials and adds the caller to context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if clientID := r.Header.Get("X-Client-ID"); clientID != "" {
			key := r.Header.Get("X-API-Key")
			if key == "" || !m.keys.Verify(clientID, key) {
				m.log.Debug().Str("client_id", clientID).Msg("API key verification failed")
				httputil.Error(w, errors.Unauthorized("invalid API key"))
				return
			}

			ctx := httputil.WithCaller(r.Context(), clientID, httputil.CallerKindService)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.Error(w, errors.Unauthorized("missing credentials"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.Error(w, errors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := m.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			m.log.Debug().Err(err).Msg("token validation failed")
			httputil.Error(w, err)
			return
		}

		ctx := httputil.WithCaller(r.Context(), claims.UserID, httputil.CallerKindUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
