package libpro

import (
	"regexp"
	"time"
)

// Member is a registered library member. Password is optional: an empty
// Password means the account accepts login with any or no password.
type Member struct {
	MembershipNumber string    `json:"membershipNumber"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Password         string    `json:"password,omitempty"`
	RegisteredAt     time.Time `json:"registeredAt"`
}

// MembershipNumberRe matches the regular membership number format,
// DLP-<year>-<5 digits>.
var MembershipNumberRe = regexp.MustCompile(`^DLP-[0-9]{4}-[0-9]{5}$`)
