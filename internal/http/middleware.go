package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	cartIDKey    contextKey = "cart_id"
	requestIDKey contextKey = "request_id"
)

const cartCookieName = "cart_id"

// CartIDMiddleware resolves the shopper's cart identity from a cookie,
// minting one on first contact. The id is the storage key of the
// persisted cart blob, so it must stay stable across page reloads.
func CartIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := ""
		if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
			cartID = c.Value
		}
		if cartID == "" {
			cartID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cartCookieName,
				Value:    cartID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func cartIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(cartIDKey).(string); ok {
		return v
	}
	return ""
}
