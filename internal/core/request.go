// AngelaMos | 2026
// request.go

package core

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// URLParamID reads a UUID route parameter. A malformed value is answered
// with 404 since no row can carry it.
func URLParamID(w http.ResponseWriter, r *http.Request, name, resource string) (string, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		NotFound(w, resource)
		return "", false
	}
	return id.String(), true
}

// QueryUUID returns the query value if it parses as a UUID, otherwise "".
func QueryUUID(r *http.Request, key string) string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

// QueryTime parses an RFC 3339 query value.
func QueryTime(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
