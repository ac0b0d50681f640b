package domain

import "time"

// User is a registered account. Password holds whatever the configured
// encoder produced; with the plain encoder that is the raw password.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

// NewUser builds an unsaved user registered at createdAt.
func NewUser(name, email, password string, createdAt time.Time) (*User, error) {
	switch {
	case isBlank(name):
		return nil, ErrNameRequired
	case isBlank(email):
		return nil, ErrEmailRequired
	case password == "":
		return nil, ErrPasswordRequired
	}
	return &User{
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: createdAt,
	}, nil
}
