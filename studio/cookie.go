package studio

import (
	"os"
	"strings"
)

// cookieName is the Roblox auth cookie as stored by Studio.
const cookieName = ".ROBLOSECURITY"

// EnvCookie overrides the cookie source when set.
const EnvCookie = "ROBLOSECURITY"

// CookieSource yields the local auth cookie value, or "" when absent.
// The default source reads the environment; hosts with access to the OS
// credential store can supply their own.
type CookieSource interface {
	Cookie() string
}

// EnvCookieSource reads the cookie from the ROBLOSECURITY environment
// variable.
type EnvCookieSource struct{}

func (EnvCookieSource) Cookie() string {
	return strings.TrimSpace(os.Getenv(EnvCookie))
}

// GetAuthCookie returns the auth cookie from src. When raw is false the
// value is formatted as an HTTP cookie pair; when true the bare value is
// returned. An absent cookie yields "" either way, never an error.
func GetAuthCookie(src CookieSource, raw bool) string {
	value := src.Cookie()
	if value == "" {
		return ""
	}
	if raw {
		return value
	}
	return cookieName + "=" + value
}
