package job

import "time"

// Job is a completed service visit from the service history. Dispatch owns
// these records; payroll only reads them when scanning a pay period.
type Job struct {
	ID                string
	LocationID        *string
	ServiceDate       time.Time
	Status            string
	AssignedEmployees []string
	DurationHours     float64
	Units             float64
	CreatedAt         time.Time
}
