package ticketlog

import (
	"sort"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// Merge combines parsed log entries with message rows into one feed sorted
// by timestamp ascending. The sort is stable: entries with equal timestamps
// keep their relative order, log entries before messages.
func Merge(logEntries []Entry, messages []domain.TicketMessage) []domain.ActivityEntry {
	combined := make([]domain.ActivityEntry, 0, len(logEntries)+len(messages))
	for _, entry := range logEntries {
		combined = append(combined, domain.ActivityEntry{
			Type:      domain.EntryTypeLog,
			Timestamp: entry.Timestamp,
			Content:   entry.Content,
			Action:    entry.Action,
		})
	}
	for i := range messages {
		msg := messages[i]
		combined = append(combined, domain.ActivityEntry{
			Type:      domain.EntryTypeMessage,
			Timestamp: msg.CreatedAt,
			Content:   msg.Content,
			Message:   &msg,
		})
	}
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Timestamp.Before(combined[j].Timestamp)
	})
	return combined
}
