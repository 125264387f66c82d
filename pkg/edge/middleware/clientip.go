package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type clientIPKey struct{}

// forwardedHeaders are checked in order, the first non-empty one wins.
// List headers keep only their first element.
var forwardedHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"True-Client-IP",
	"X-CloudFront-Forwarded-For",
}

// ClientIP resolves the client address of every request and stores it in the request context.
// Proxy headers take precedence over the connection's remote address.
func ClientIP() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey{}, resolveClientIP(r))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIPFromRequest returns the address stored by ClientIP, or an empty string if ClientIP did not run.
func ClientIPFromRequest(r *http.Request) string {
	ip, _ := r.Context().Value(clientIPKey{}).(string)
	return ip
}

func resolveClientIP(r *http.Request) string {
	for _, name := range forwardedHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}

		first, _, _ := strings.Cut(v, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
