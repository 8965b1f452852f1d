package payroll

import "errors"

var (
	ErrRunNotFound = errors.New("payroll run not found")
	ErrRunConflict = errors.New("payroll run was modified concurrently")
)
