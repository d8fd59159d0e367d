package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	v1 "github.com/journal-labs/journalchain/business/web/v1"
	"github.com/journal-labs/journalchain/foundation/web"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned when a request carries a missing or
// invalid bearer token.
var ErrUnauthorized = errors.New("attempted action is not authorized")

// Auth validates a JWT bearer token signed with the shared node secret.
// The private API is only for operators and other trusted tooling.
func Auth(secret string) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Expecting: Authorization: Bearer <token>
			authStr := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(authStr, "Bearer ")
			if !found {
				return v1.NewRequestError(ErrUnauthorized, http.StatusUnauthorized)
			}

			keyFunc := func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			}

			token, err := jwt.Parse(tokenStr, keyFunc)
			if err != nil || !token.Valid {
				return v1.NewRequestError(ErrUnauthorized, http.StatusUnauthorized)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
