package domain

import "context"

// Directory lists the match vocabularies of a residence
// rows are non deleted and scoped to the residence, order is stable
type Directory interface {
	ListResidents(ctx context.Context, residenceID string) ([]ResidentEntry, error)
	ListTaskTemplates(ctx context.Context, residenceID string) ([]TaskEntry, error)
}

// Access decides whether a user may act in a residence
// a denial is a forbidden error
type Access interface {
	CanAccess(ctx context.Context, userID, residenceID string) error
}

// Records writes what an operator confirmed
type Records interface {
	TaskTemplate(ctx context.Context, residenceID, templateID string) (TaskEntry, error)
	ResidentExists(ctx context.Context, residenceID, residentID string) error
	InsertTaskApplication(ctx context.Context, a TaskApplication) error
	InsertMeasurement(ctx context.Context, m MeasurementRecord) error
}

// Audit receives every resolution, implementations must not block the caller for long
type Audit interface {
	Record(ctx context.Context, ev AuditEvent) error
}

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	ParseTask(ctx context.Context, in ParseInput) (Outcome, error)
	ParseMeasurement(ctx context.Context, in ParseInput) (Outcome, error)
	ApplyTask(ctx context.Context, in ApplyTaskInput) (Applied, error)
	RecordMeasurement(ctx context.Context, in MeasurementInput) (Applied, error)
}
