package user

import (
	"context"
)

type Role string

const (
	RoleCompany    Role = "company"
	RoleIndividual Role = "individual"
)

func (r Role) Valid() bool {
	return r == RoleCompany || r == RoleIndividual
}

// User is the signed-in view of an account. It never carries the password.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     Role   `json:"role"`
}

func (u *User) IsCompany() bool {
	return u.Role == RoleCompany
}

func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}

// Account is the stored shape of a user. The password is kept and
// compared in plain text.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     Role   `json:"role"`
}

func (a *Account) ToUser() User {
	return User{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Surname:  a.Surname,
		Role:     a.Role,
	}
}

// Repository reads and replaces the users collection.
type Repository interface {
	GetAll(ctx context.Context) ([]Account, error)
	SaveAll(ctx context.Context, accounts []Account) error
}

// SessionRepository persists the signed-in user.
type SessionRepository interface {
	// GetCurrent returns nil, nil when nobody is signed in.
	GetCurrent(ctx context.Context) (*User, error)
	SetCurrent(ctx context.Context, u User) error
	ClearCurrent(ctx context.Context) error
}

// FindByUsername returns the account with username, or nil.
func FindByUsername(accounts []Account, username string) *Account {
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i]
		}
	}
	return nil
}
