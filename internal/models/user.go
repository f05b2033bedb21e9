package models

import (
	"regexp"
	"time"
)

var usernameRegexp = regexp.MustCompile(`^\w{3,32}$`)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (u *User) Validate() error {
	if !usernameRegexp.MatchString(u.Username) {
		return Invalid("username must be 3 to 32 letters, digits or underscores")
	}
	return nil
}
