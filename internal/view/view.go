// Package view tracks the visible view and renders pages from live repository data.
package view

import (
	"strings"
)

// AppName appears in the dashboard copy.
const AppName = "FULLSTACK APP"

type Name string

const (
	Landing     Name = "landing"
	Dashboard   Name = "dashboard"
	Auth        Name = "auth"
	Profile     Name = "profile"
	Accounts    Name = "accounts"
	Employees   Name = "employees"
	Departments Name = "departments"
	Requests    Name = "requests"
)

func Names() []Name {
	return []Name{Landing, Dashboard, Auth, Profile, Accounts, Employees, Departments, Requests}
}

func ParseName(s string) (Name, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range Names() {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// RequiresUser reports whether the view is only reachable while signed in.
func (n Name) RequiresUser() bool {
	switch n {
	case Landing, Auth:
		return false
	default:
		return true
	}
}

const (
	BadgeActive   = "badge-active"
	BadgeInactive = "badge-inactive"
	BadgePending  = "badge-pending"
)

type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// StatusBadge maps a status to its badge. Anything that is not active or inactive renders as
// pending, and an empty status is labelled "Pending".
func StatusBadge(status string) Badge {
	b := Badge{Label: status, Class: BadgePending}
	switch strings.ToLower(status) {
	case "active":
		b.Class = BadgeActive
	case "inactive":
		b.Class = BadgeInactive
	}
	if b.Label == "" {
		b.Label = "Pending"
	}
	return b
}

type Row struct {
	ID     string   `json:"id"`
	Cells  []string `json:"cells"`
	Status *Badge   `json:"status,omitempty"`
}

type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type ProfileCard struct {
	Title  string `json:"title"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Page is one rendered view.
type Page struct {
	View        Name         `json:"view"`
	Title       string       `json:"title"`
	Greeting    string       `json:"greeting,omitempty"`
	Description string       `json:"description,omitempty"`
	Profile     *ProfileCard `json:"profile,omitempty"`
	Table       *Table       `json:"table,omitempty"`
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
