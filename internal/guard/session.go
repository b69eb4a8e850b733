package guard

import (
	"strings"
	"time"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of an identity-provider access token the guard reads.
type Claims struct {
	jwt.RegisteredClaims
	PreferredUsername string             `json:"preferred_username,omitempty"`
	Email             string             `json:"email,omitempty"`
	RealmAccess       roleSet            `json:"realm_access"`
	ResourceAccess    map[string]roleSet `json:"resource_access,omitempty"`
}

type roleSet struct {
	Roles []string `json:"roles"`
}

// Session is the client's view of its login. The token is never verified
// here: signature checks belong to the services that receive it, and the
// guard only needs to know whether a usable token is held.
type Session struct {
	token  string
	claims *Claims
	now    func() time.Time
}

// NewSession reads an access token, with or without the "Bearer " prefix.
// An empty or unparseable token yields a logged-out session.
func NewSession(token string) Session {
	return newSessionAt(token, time.Now)
}

func newSessionAt(token string, now func() time.Time) Session {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	s := Session{token: token, now: now}
	if token == "" {
		return s
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return s
	}
	s.claims = claims
	return s
}

// LoggedIn is true while the token parses and has not expired. Tokens without
// an expiry are treated as logged out.
func (s Session) LoggedIn() bool {
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return false
	}
	return s.now().Before(s.claims.ExpiresAt.Time)
}

// Roles merges realm roles with every client's roles, without duplicates.
func (s Session) Roles() []domain.Role {
	if s.claims == nil {
		return nil
	}
	seen := make(map[string]bool)
	var roles []domain.Role
	add := func(names []string) {
		for _, n := range names {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			roles = append(roles, domain.Role(n))
		}
	}
	add(s.claims.RealmAccess.Roles)
	for _, client := range s.claims.ResourceAccess {
		add(client.Roles)
	}
	return roles
}

// Username prefers preferred_username, then email, then subject.
func (s Session) Username() string {
	if s.claims == nil {
		return ""
	}
	switch {
	case s.claims.PreferredUsername != "":
		return s.claims.PreferredUsername
	case s.claims.Email != "":
		return s.claims.Email
	}
	return s.claims.Subject
}

// Bearer is the Authorization value to send with gateway requests.
func (s Session) Bearer() string {
	if s.token == "" {
		return ""
	}
	return "Bearer " + s.token
}

func (s Session) View() domain.SessionView {
	if !s.LoggedIn() {
		return domain.SessionView{}
	}
	return domain.SessionView{LoggedIn: true, Roles: s.Roles()}
}
