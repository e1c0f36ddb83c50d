package auth

import (
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/view"
)

// User is the signed-in account as shown to clients. The password never leaves the document.
type User struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Session is the outcome of an auth operation: who is signed in and the page now shown.
type Session struct {
	SignedIn bool      `json:"signedIn"`
	User     *User     `json:"user,omitempty"`
	Page     view.Page `json:"page"`
}

func ToUser(a document.Account) *User {
	return &User{
		ID:        a.ID,
		Title:     a.Title,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		Status:    a.Status,
		IsAdmin:   a.IsAdmin(),
	}
}
