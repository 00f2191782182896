package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jbweber/homelab/stagerad/internal/logger"
)

// Authenticator rejects requests without a valid bearer token and stores the
// caller on the request context otherwise
func Authenticator(tokens *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, err)
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected bearer token")
				unauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), claims.Caller())))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	detail := ErrUnauthenticated.Error()
	if errors.Is(err, ErrExpiredToken) {
		detail = ErrExpiredToken.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="stagerad"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":  "Unauthorized",
		"status": http.StatusUnauthorized,
		"detail": detail,
	})
}
