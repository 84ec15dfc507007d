package auth

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
)

// Middleware authenticates requests by Bearer header or session cookie and
// stores the claims in the request context.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		claims, err := m.ValidateRequest(r)
		if err != nil {
			log.WithError(err).Warn("Rejected session token")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = config.WithLogFields(ctx, logrus.Fields{"session_id": claims.SessionID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ValidateRequest validates the token carried by r, returning ErrMissingToken
// when there is none.
func (m *TokenManager) ValidateRequest(r *http.Request) (*Claims, error) {
	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	return m.Validate(tokenStr)
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
