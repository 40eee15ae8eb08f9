package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusProcessing TicketStatus = "Processing"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether s is one of the known states.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusProcessing, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. Submitter fields (Name, Email,
// Process) are snapshots taken from the User at creation time and are never
// re-synced when the user record changes.
type Ticket struct {
	ID          string
	Name        string
	Email       string
	Process     string
	DeskNo      string
	Issue       string
	Description string
	Status      TicketStatus
	Note        string
	ImageURL    string
	EmpID       int64
	CreatedAt   time.Time
}
