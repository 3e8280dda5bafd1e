package requestid

import (
	"net/http"
	"remindchat/internal/core/domain/logging"

	"github.com/google/uuid"
)

const (
	HEADER     = "X-Request-ID"
	MAX_ID_LEN  = 64
)

// SetRequestID reuses a sane incoming X-Request-ID or generates a new one.
func SetRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HEADER)
		if id == "" || len(id) > MAX_ID_LEN {
			id = uuid.NewString()
		}
		rw.Header().Set(HEADER, id)
		next.ServeHTTP(rw, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}
