package transport

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
	"shopservice/pkg/infrastructure/auth"
)

type contextKey int

const currentUserKey contextKey = iota

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

// authMiddleware validates the bearer token and resolves the user behind
// its subject email. Handlers downstream trust the resolved identity.
func authMiddleware(tokens auth.TokenManager, users service.UserService) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, auth.ErrInvalidToken)
				return
			}

			email, err := tokens.Verify(token)
			if err != nil {
				writeError(w, err)
				return
			}

			user, err := users.FindUserByEmail(r.Context(), email)
			if err != nil {
				writeError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func currentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok
}
