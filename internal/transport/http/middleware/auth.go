package httpmw

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ctxKeyUsername ctxKey = "username"

type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

// AuthMiddleware: требуем Bearer access-токен, кладём имя пользователя в контекст.
func AuthMiddleware(auth UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") || len(header) <= 7 {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"missing bearer token"}`))
				return
			}

			token := strings.TrimSpace(header[7:])
			username, err := auth.CurrentUser(r.Context(), token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid token","code":"invalid_token"}`))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUsername, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UsernameFromCtx(ctx context.Context) string {
	if v := ctx.Value(ctxKeyUsername); v != nil {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
