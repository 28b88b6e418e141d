// Package model holds the LightBnB records read from and written to the
// database.
package model

// User is a registered guest or owner.
type User struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}

// NewUser is the input to AddUser. Column sizes bound the lengths.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"-" validate:"required,max=255"`
}
