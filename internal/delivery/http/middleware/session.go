package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey string

const sessionKey contextKey = "sessionKey"

// SessionHeader carries the browser tab's session id. Clients generate it once
// per page load so two tabs are two sessions.
const SessionHeader = "X-Session-ID"

const maxSessionKeyLen = 128

// SetSessionKey returns a context with the session key set.
func SetSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKey, key)
}

// SessionKeyFromContext returns the session key set by Session, if present.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKey).(string)
	return key, ok && key != ""
}

// Session resolves the submitting session for each request: the X-Session-ID
// header when present, otherwise the client address.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(SessionHeader))
		if len(key) > maxSessionKeyLen {
			key = key[:maxSessionKeyLen]
		}
		if key == "" {
			key = "addr:" + clientHost(r.RemoteAddr)
		}
		next.ServeHTTP(w, r.WithContext(SetSessionKey(r.Context(), key)))
	})
}

func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
