package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ConfigurationError reports a setting that must be fixed before any request
// can be made.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s", e.Key, e.Reason)
}

// Remediation returns the operator-facing hint printed next to the error.
func (e *ConfigurationError) Remediation() string {
	var b strings.Builder
	b.WriteString("Please set the following environment variables:\n")
	fmt.Fprintf(&b, "  %s - Your Mealie instance URL (default: %s)\n", EnvBaseURL, DefaultBaseURL)
	fmt.Fprintf(&b, "  %s - Your Mealie API token (required)\n", EnvAPIToken)
	return b.String()
}

// TokenExpiry reads the exp claim of a Mealie API token. Mealie issues JWTs;
// the signature is not checked since only the server can verify it. ok is
// false for opaque tokens and tokens without an expiry.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	date, err := claims.GetExpirationTime()
	if err != nil || date == nil {
		return time.Time{}, false
	}
	return date.Time, true
}
