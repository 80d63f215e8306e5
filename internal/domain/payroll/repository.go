package payroll

import (
	"context"
	"time"
)

// PayrollRepository stores at most one entry per (employee, month). Writes
// that depend on an entry's status check it under the same lock as the write.
type PayrollRepository interface {
	// SavePending writes entries whose stored counterpart is missing or still
	// pending review. An entry paid in the meantime keeps its stored
	// snapshot. The result holds the stored entry for every input, in order.
	SavePending(ctx context.Context, entries []Entry) ([]Entry, error)

	// Transition replaces the stored entry only while its status is from;
	// otherwise it fails with ErrEntryAlreadyPaid or ErrEntryNotPaid.
	Transition(ctx context.Context, entry Entry, from Status) (Entry, error)

	// TransitionMany applies Transition to a batch in one collection write
	// and returns the entries that moved. Entries that lost the race are skipped.
	TransitionMany(ctx context.Context, entries []Entry, from Status) ([]Entry, error)

	// UpdateNotes changes the notes of an entry in any status
	UpdateNotes(ctx context.Context, id, notes string, at time.Time) (Entry, error)

	GetByID(ctx context.Context, id string) (Entry, error)
	ListByMonth(ctx context.Context, month string) ([]Entry, error)
}
