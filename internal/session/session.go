// Package session holds the browser-session token pairs issued by the studio
// backend. Tokens live server-side keyed by a session cookie with no Max-Age,
// so they last exactly as long as the browser tab that opened them.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is the access/refresh pair returned by the backend's token
// endpoint. The frontend never signs or verifies tokens; it only reads the
// expiry claim off the access token to drive the state machine.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type State int

const (
	StateAbsent State = iota
	StateExpired
	StateValid
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	default:
		return "absent"
	}
}

// State classifies the pair at the given instant. A token that cannot be
// parsed counts as expired so the caller falls through to refresh-or-clear.
func (tp TokenPair) State(now time.Time) State {
	if tp.Access == "" {
		return StateAbsent
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tp.Access, claims); err != nil {
		return StateExpired
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return StateValid
	}
	if exp.Time.Before(now) {
		return StateExpired
	}
	return StateValid
}

// CanRefresh reports whether an expired pair still has a refresh token to try.
func (tp TokenPair) CanRefresh() bool {
	return tp.Refresh != ""
}
