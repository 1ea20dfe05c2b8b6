package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

const (
	APIKeyHeader     = "X-API-Key"
	TokenValueHeader = "tokenValue"
)

// APIKey accepts the key in either X-API-Key or tokenValue.
func APIKey(expected string, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				key = r.Header.Get(TokenValueHeader)
			}

			if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
				log.Debug("api key rejected",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.String("path", r.URL.Path),
				)
				writeDetail(w, http.StatusUnauthorized, "Invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
