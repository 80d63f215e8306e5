package payroll

import "errors"

var (
	ErrEntryNotFound    = errors.New("payroll entry not found")
	ErrEntryAlreadyPaid = errors.New("payroll entry already paid")
	ErrEntryNotPaid     = errors.New("payroll entry is not paid")
	ErrEmployeeNotFound = errors.New("employee not found")
)
