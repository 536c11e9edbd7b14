package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models a staff account. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserListItem is the row shape returned by the users listing.
type UserListItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ListItem() UserListItem {
	item := UserListItem{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.Name != "" {
		name := u.Name
		item.Name = &name
	}
	return item
}

// UserPatch carries the fields of a partial update; nil means unchanged.
type UserPatch struct {
	Email *string
	Name  *string
	Role  *Role
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil
}
