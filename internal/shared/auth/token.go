package auth

import (
	"net/http"
	"strings"
)

// CookieName is the cookie the browser app stores its bearer token in.
const CookieName = "token"

// ExtractBearerToken extracts the token from the Authorization header.
// It returns an empty string if no bearer token is present.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer eyJhbGciOiJIUzI1NiIs...")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractTokenFromCookie reads the token cookie set by the browser app.
func ExtractTokenFromCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// ExtractToken returns the first non-empty token found in, in order:
// the Authorization header, the token cookie, the given query parameter.
func ExtractToken(r *http.Request, queryParam string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if token := ExtractTokenFromCookie(r); token != "" {
		return token
	}
	if r == nil || r.URL == nil || queryParam == "" {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
