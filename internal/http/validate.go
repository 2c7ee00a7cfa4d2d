package http

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// fieldError mirrors the wire shape clients already consume:
// {"errors":[{"msg":"...","param":"..."}]}. Validation enumerates every
// failing field, not just the first.
type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

func errorsBody(errs []fieldError) gin.H { return gin.H{"errors": errs} }

// invalidCredentials is the one shared answer for "email taken", "no such
// user" and "wrong password". One value, so the branches cannot drift apart
// and leak which case the caller hit.
var invalidCredentials = gin.H{"errors": []fieldError{{Msg: "Invalid credentials"}}}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool { return emailRe.MatchString(s) }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// parseDate accepts the two date shapes clients send: plain dates and full
// RFC 3339 timestamps.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
