package ticketlog

import (
	"fmt"
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// FormatLine renders one log line in the legacy bracketed grammar.
func FormatLine(ts time.Time, text string) string {
	return fmt.Sprintf("[%s] %s", ts.Format(TimeLayout), text)
}

// Append joins a formatted line onto an existing log blob.
func Append(log string, line string) string {
	if log == "" {
		return line
	}
	return log + "\n" + line
}

// The builders below carry the event kind known at write time into the
// legacy wording. Note that Classify runs its own keyword precedence over
// stored text, so a line can come back under a different category than the
// event that wrote it (the number-assignment line contains "atribuído" and
// reads back as assignment_change). That mismatch matches historical logs.

// StatusChangedLine records a status transition.
func StatusChangedLine(old, new domain.TicketStatus) string {
	return fmt.Sprintf("Status alterado de %s para %s", old, new)
}

// AssigneeChangedLine records assignment to a named agent.
func AssigneeChangedLine(assigneeName string) string {
	return fmt.Sprintf("Responsável alterado para %s", assigneeName)
}

// AssigneeClearedLine records removal of the current assignee.
func AssigneeClearedLine() string {
	return "Responsável removido"
}

// TicketEditedLine records an edit of the ticket's own fields.
func TicketEditedLine() string {
	return "Ticket editado"
}

// RmaRequestedLine records the opening of an RMA process.
func RmaRequestedLine() string {
	return "RMA solicitado"
}

// RmaNumberAssignedLine records completion of the numbering step.
func RmaNumberAssignedLine(number string, ts time.Time) string {
	return fmt.Sprintf("RMA #%s criado e número atribuído em %s", number, ts.Format(TimeLayout))
}

// RmaDeletedLine records removal of an RMA, with or without a number.
func RmaDeletedLine(number *string, ts time.Time) string {
	label := "sem número"
	if number != nil && *number != "" {
		label = *number
	}
	return fmt.Sprintf("RMA %s excluído em %s", label, ts.Format(TimeLayout))
}
