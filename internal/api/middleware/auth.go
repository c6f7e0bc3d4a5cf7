package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// UserIDHeader заголовок с ID пользователя, проставляемый шлюзом
const UserIDHeader = "X-User-ID"

// Auth извлекает ID пользователя из X-User-ID.
// Без заголовка запрос анонимный и лимитируется по IP; некорректный ID отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil || len(header) != 36 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "UNAUTHORIZED",
				"message": "некорректный ID пользователя",
			})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerID возвращает идентификатор для счётчиков лимита: ID пользователя или IP клиента
func CallerID(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + userID
	}
	return "ip:" + ClientIP(r)
}
