package rate

import "time"

// Type enum
type Type string

const (
	TypeHourly   Type = "hourly"
	TypePerVisit Type = "per_visit"
	TypeMonthly  Type = "monthly"
)

// Record is one entry in an employee's rate history. Records are created by
// HR workflows, are immutable, and are never deleted by payroll logic. The
// rate in force at an instant T is the record with the latest EffectiveDate
// not after T.
type Record struct {
	ID            string
	EmployeeID    string
	EffectiveDate time.Time
	Type          Type // empty on legacy rows that only carry HourlyRate
	HourlyRate    float64
	PerVisitRate  float64
	MonthlyRate   float64
	MonthlyPayDay *int
	CreatedAt     time.Time
}

// Snapshot is an immutable copy of a resolved rate embedded in a timesheet
// at generation time. Once attached it is never recomputed from the live
// record, which protects historical payroll from later rate edits.
type Snapshot struct {
	Type          Type    `json:"type"`
	Amount        float64 `json:"amount"`
	MonthlyPayDay *int    `json:"monthlyPayDay,omitempty"`
}

// Normalize maps a persisted rate record onto the closed snapshot shape,
// absorbing the legacy format in one place: rows written before rate types
// existed carry only HourlyRate and are treated as hourly.
//
// Returns ok=false when the record cannot produce a usable snapshot: an
// explicit per_visit record with a missing or zero per-visit amount, or a
// legacy row with no hourly amount either.
func Normalize(rec Record) (Snapshot, bool) {
	typ := rec.Type
	if typ == "" && rec.HourlyRate > 0 {
		typ = TypeHourly
	}

	switch typ {
	case TypeHourly:
		return Snapshot{Type: TypeHourly, Amount: rec.HourlyRate}, true
	case TypePerVisit:
		if rec.PerVisitRate <= 0 {
			return Snapshot{}, false
		}
		return Snapshot{Type: TypePerVisit, Amount: rec.PerVisitRate}, true
	case TypeMonthly:
		return Snapshot{Type: TypeMonthly, Amount: rec.MonthlyRate, MonthlyPayDay: rec.MonthlyPayDay}, true
	default:
		return Snapshot{}, false
	}
}
