// Package document holds the persisted shape of the console state: one JSON object with the
// current user reference and the four ordered entity collections.
package document

import "strings"

// Kind names an entity collection.
type Kind string

const (
	KindAccount    Kind = "account"
	KindEmployee   Kind = "employee"
	KindDepartment Kind = "department"
	KindRequest    Kind = "request"
)

// Kinds lists every entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindAccount, KindEmployee, KindDepartment, KindRequest}
}

// ParseKind accepts the singular kind or its collection name ("accounts").
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if s == string(k) || s == k.Collection() {
			return k, true
		}
	}
	return "", false
}

// Collection is the JSON key of the kind's collection.
func (k Kind) Collection() string {
	return string(k) + "s"
}

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Account struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Password  string `json:"password"`
}

// IsAdmin compares the free-text role case-insensitively.
func (a *Account) IsAdmin() bool {
	return strings.EqualFold(a.Role, RoleAdmin)
}

// FullName is "first last" trimmed, falling back to the local part of the email.
func (a *Account) FullName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name != "" {
		return name
	}
	return EmailLocalPart(a.Email)
}

type Employee struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	AccountID    *string `json:"accountId"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"departmentId"`
	HireDate     string  `json:"hireDate"`
	Status       string  `json:"status"`
}

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Request struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	EmployeeID *string `json:"employeeId"`
	Items      string  `json:"items"`
	Status     string  `json:"status"`
}

type Document struct {
	CurrentUserID *string      `json:"currentUserId"`
	Accounts      []Account    `json:"accounts"`
	Employees     []Employee   `json:"employees"`
	Departments   []Department `json:"departments"`
	Requests      []Request    `json:"requests"`
}

// Default is the empty document: no current user and four empty collections.
func Default() *Document {
	return &Document{
		CurrentUserID: nil,
		Accounts:      []Account{},
		Employees:     []Employee{},
		Departments:   []Department{},
		Requests:      []Request{},
	}
}

// Normalize replaces nil collections with empty ones so they encode as [] rather than null.
func (d *Document) Normalize() {
	if d.Accounts == nil {
		d.Accounts = []Account{}
	}
	if d.Employees == nil {
		d.Employees = []Employee{}
	}
	if d.Departments == nil {
		d.Departments = []Department{}
	}
	if d.Requests == nil {
		d.Requests = []Request{}
	}
}

// Ref converts an empty string to a null reference.
func Ref(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

// Deref returns the referenced id or "".
func Deref(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// EmailLocalPart returns everything before the first "@".
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
