package domain

import "time"

// Role enumerates account privilege levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record for an employee.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	EmpID        int64
	Process      string
	Role         Role
	PasswordHash string
	JobTitle     string
	Phone        string
	CreatedAt    time.Time
	TicketIDs    []string
}

// FullName joins first and last name the way tickets denormalize it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
