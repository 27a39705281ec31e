package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// UserIDKey используется как ключ для хранения ID пользователя в контексте
	UserIDKey contextKey = "user_id"
	// SessionCookieName - имя куки с токеном сессии
	SessionCookieName = "session"

	bearerPrefix = "Bearer "
)

// ErrNoToken возвращается, когда запрос не содержит токена сессии
var ErrNoToken = errors.New("no session token")

// Authenticator проверяет подписанный токен сессии и кладет ID пользователя в контекст.
// Выпуск сессий (вход, регистрация) выполняет внешний провайдер; здесь только проверка.
type Authenticator struct {
	secret []byte
	logger *zap.Logger
}

// NewAuthenticator создает Authenticator с ключом подписи HS256
func NewAuthenticator(secret string, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		logger: logger,
	}
}

// Resolve извлекает пользователя из токена, если он есть, и не отклоняет запрос.
// Невалидный токен равносилен его отсутствию.
func (a *Authenticator) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.userFromRequest(r)
		if err != nil {
			if !errors.Is(err, ErrNoToken) {
				a.logger.Info("Rejected session token", zap.String("path", r.URL.Path), zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Require отвечает 401, если в контексте нет пользователя.
// Должен стоять после Resolve.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userFromRequest читает токен из заголовка Authorization или куки сессии
func (a *Authenticator) userFromRequest(r *http.Request) (string, error) {
	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		token = strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	} else if cookie, err := r.Cookie(SessionCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return "", ErrNoToken
	}
	return ParseToken(token, a.secret)
}

// ParseToken проверяет подпись и срок действия токена и возвращает ID пользователя
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid session token: missing user")
	}
	return claims.UserID, nil
}

// IssueToken создает токен сессии для пользователя
func IssueToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext возвращает ID пользователя или пустую строку
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: message})
}
