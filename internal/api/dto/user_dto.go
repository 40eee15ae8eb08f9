package dto

import (
	"time"

	"github.com/ada-support/helpdesk/internal/domain"
)

// SendOTPRequest payload.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// CreateUserRequest payload for OTP-gated registration.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Process   string `json:"process"`
	Email     string `json:"email"`
	EmpID     int64  `json:"empID"`
	Password  string `json:"password"`
	OTP       string `json:"otp"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for the admin-only update. Absent fields are left
// untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
}

// UpdateProfileRequest payload for the self-service update.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	JobTitle  string `json:"jobTitle"`
	Phone     string `json:"phone"`
}

// UserResponse is the client view of a user. The credential hash is never
// serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	EmpID     int64     `json:"empID"`
	Process   string    `json:"process"`
	Role      string    `json:"role"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Date      time.Time `json:"date"`
	Tickets   []string  `json:"tickets"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	tickets := user.TicketIDs
	if tickets == nil {
		tickets = []string{}
	}
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		EmpID:     user.EmpID,
		Process:   user.Process,
		Role:      string(user.Role),
		JobTitle:  user.JobTitle,
		Phone:     user.Phone,
		Date:      user.CreatedAt,
		Tickets:   tickets,
	}
}

// NewUserResponses converts a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
