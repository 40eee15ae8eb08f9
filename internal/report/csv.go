package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/ada-support/helpdesk/internal/domain"
)

// FileName is the download name offered to admins.
const FileName = "tickets_report.csv"

var columns = []string{
	"Name", "Email", "Process", "Desk No", "Issue", "Description",
	"Date", "Time", "Status", "Note", "Emp ID",
}

// WriteTickets projects tickets into the flat CSV report. The creation
// timestamp is split into a calendar date and a 12-hour clock time in loc.
func WriteTickets(w io.Writer, tickets []domain.Ticket, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, ticket := range tickets {
		created := ticket.CreatedAt.In(loc)
		record := []string{
			ticket.Name,
			ticket.Email,
			ticket.Process,
			ticket.DeskNo,
			ticket.Issue,
			ticket.Description,
			created.Format("2006-01-02"),
			formatClock(created),
			string(ticket.Status),
			ticket.Note,
			fmt.Sprintf("%d", ticket.EmpID),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatClock renders a 12-hour time with AM/PM; hour 0 becomes 12 and
// minutes are zero-padded.
func formatClock(t time.Time) string {
	hours := t.Hour()
	meridiem := "AM"
	if hours >= 12 {
		meridiem = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, t.Minute(), meridiem)
}
