package payroll

import "context"

type PayrollService interface {
	// GetMonth returns one entry per employee, creating missing ones
	GetMonth(ctx context.Context, filter PayrollFilter) (MonthResponse, error)

	GetEntry(ctx context.Context, id string) (Entry, error)

	// PayEntry moves a pending entry to paid and freezes its amounts
	PayEntry(ctx context.Context, id string) (Entry, error)

	// PayAll pays every pending entry of the month matching the filter
	PayAll(ctx context.Context, filter PayrollFilter) (PayAllResponse, error)

	// ReverseEntry moves a paid entry back to pending review
	ReverseEntry(ctx context.Context, id string) (Entry, error)

	SetNotes(ctx context.Context, req UpdateNotesRequest) (Entry, error)

	Summary(ctx context.Context, month string) (SummaryResponse, error)

	// ExportMonth renders the month as an XLSX workbook
	ExportMonth(ctx context.Context, filter PayrollFilter) (ExportFile, error)
}
