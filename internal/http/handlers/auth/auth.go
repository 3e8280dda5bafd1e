package auth

import (
	"net/http"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services/auth"
	"strings"
)

const (
	AUTH_TOKEN_PREFIX      = "Bearer "
	AUTH_TOKEN_MAX_LEN     = 1024
	AUTH_TOKEN_QUERY_PARAM = "token"
)

func ParseToken(r *http.Request) (token user.AccessToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 || parts[0] != "" {
		return token, false
	}
	if parts[1] == "" || len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.AccessToken(parts[1]), true
}

// ParseQueryToken reads the token from the query string, which is the only
// place an EventSource client can put it.
func ParseQueryToken(r *http.Request) (token user.AccessToken, ok bool) {
	raw := r.URL.Query().Get(AUTH_TOKEN_QUERY_PARAM)
	if raw == "" || len(raw) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.AccessToken(raw), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithAccessToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
