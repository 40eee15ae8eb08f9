package dto

import (
	"time"

	"github.com/ada-support/helpdesk/internal/domain"
)

// UpdateTicketRequest payload. The mutable fields arrive nested under a
// ticket key; issue, description and status are all required.
type UpdateTicketRequest struct {
	Ticket TicketFields `json:"ticket"`
}

// TicketFields is the mutable field set of a ticket.
type TicketFields struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Note        string `json:"note"`
}

// TicketResponse is the client view of a ticket.
type TicketResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Process     string    `json:"process"`
	DeskNo      string    `json:"deskNo"`
	Issue       string    `json:"issue"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"dateTime"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	Image       string    `json:"image,omitempty"`
	EmpID       int64     `json:"empID"`
}

// NewTicketResponse converts a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Name:        ticket.Name,
		Email:       ticket.Email,
		Process:     ticket.Process,
		DeskNo:      ticket.DeskNo,
		Issue:       ticket.Issue,
		Description: ticket.Description,
		DateTime:    ticket.CreatedAt,
		Status:      string(ticket.Status),
		Note:        ticket.Note,
		Image:       ticket.ImageURL,
		EmpID:       ticket.EmpID,
	}
}

// NewTicketResponses converts a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
