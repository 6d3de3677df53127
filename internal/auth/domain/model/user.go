package model

// UserProfile holds the identity-provider view of a user. It lives only in the
// session and is rebuilt from provider data on every login.
type UserProfile struct {
	// ID is the opaque external identifier issued by the identity provider.
	ID          string   `json:"_id"`
	DisplayName string   `json:"displayName"`
	Emails      []string `json:"emails"`
	Picture     string   `json:"picture,omitempty"`
}

// Email returns the canonical email address, the first one reported by the
// provider, or "" when none was supplied.
func (u *UserProfile) Email() string {
	if len(u.Emails) == 0 {
		return ""
	}
	return u.Emails[0]
}
