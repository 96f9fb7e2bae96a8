// Package ticketlog owns the ticket activity log wire format: the
// newline-separated "[DD/MM/YYYY HH:MM:SS] free text" lines embedded in the
// ticket row. It produces new lines, parses stored ones, classifies them
// into coarse action categories, and merges them with structured messages
// into a single chronological feed.
package ticketlog

import (
	"regexp"
	"strings"
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// TimeLayout is the day-first Brazilian timestamp used inside log brackets.
const TimeLayout = "02/01/2006 15:04:05"

var bracketPattern = regexp.MustCompile(`^\[([^\]]+)\]\s?(.*)$`)

// Entry is one parsed log line.
type Entry struct {
	Timestamp time.Time
	Content   string
	Action    domain.ActionType
}

// Parse splits a ticket log into entries, skipping blank lines. Lines with
// a parseable bracketed timestamp keep the remainder as content; a missing
// or malformed bracket degrades silently to the fallback timestamp (the
// ticket's creation time) with the raw line as content. Parse never fails.
func Parse(log string, fallback time.Time) []Entry {
	if strings.TrimSpace(log) == "" {
		return nil
	}
	var entries []Entry
	for _, line := range strings.Split(log, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseLine(line, fallback))
	}
	return entries
}

func parseLine(line string, fallback time.Time) Entry {
	if m := bracketPattern.FindStringSubmatch(line); m != nil {
		if ts, err := time.ParseInLocation(TimeLayout, m[1], time.Local); err == nil {
			return Entry{Timestamp: ts, Content: m[2], Action: Classify(m[2])}
		}
	}
	return Entry{Timestamp: fallback, Content: line, Action: Classify(line)}
}

// Classify assigns exactly one action category by case-insensitive
// substring match, first match wins. The precedence order is part of the
// compatibility contract with historical log text.
func Classify(content string) domain.ActionType {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "status"):
		return domain.ActionStatusChange
	case strings.Contains(lower, "responsável"), strings.Contains(lower, "atribuído"):
		return domain.ActionAssignmentChange
	case strings.Contains(lower, "rma"):
		return domain.ActionRmaCreation
	case strings.Contains(lower, "editado"), strings.Contains(lower, "atualizado"):
		return domain.ActionTicketEdit
	default:
		return domain.ActionGeneral
	}
}
