// Package domain holds the voice resolution types and the ports the
// orchestrator depends on
package domain

import (
	"strings"
	"time"

	"residences/internal/core/vitals"
)

// StatusSlots is the number of status columns a task template carries
const StatusSlots = 6

// ResidentEntry is one resident of a residence directory
// FullName is the match key, the location names only describe options
type ResidentEntry struct {
	ID        string
	FullName  string
	BedID     string
	BedName   string
	RoomID    string
	RoomName  string
	FloorName string
}

// TaskEntry is one task template of a residence directory
// Statuses keeps the template's column order, blanks included
type TaskEntry struct {
	ID       string
	Name     string
	Statuses [StatusSlots]string
}

// StatusLabel is a non blank status with its 1 based column index
type StatusLabel struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Labels returns the non blank statuses in column order
func (t TaskEntry) Labels() []StatusLabel {
	var out []StatusLabel
	for i, s := range t.Statuses {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, StatusLabel{Index: i + 1, Label: s})
		}
	}
	return out
}

// Kind tags an Outcome
type Kind string

// Outcome kinds
const (
	KindSuccess               Kind = "success"
	KindValidationError       Kind = "validation_error"
	KindResidentAmbiguous     Kind = "resident_ambiguous"
	KindResidentNotFound      Kind = "resident_not_found"
	KindTaskAmbiguous         Kind = "task_ambiguous"
	KindTaskNotFound          Kind = "task_not_found"
	KindStatusAmbiguous       Kind = "status_ambiguous"
	KindStatusValidationError Kind = "status_validation_error"
	KindValueOutOfRange       Kind = "measurement_value_out_of_range"
)

// Success reports whether k is the success kind
func (k Kind) Success() bool { return k == KindSuccess }

// Option is one disambiguation choice, in matcher order
// location fields are set for residents, Index for statuses
type Option struct {
	ID        string  `json:"id,omitempty"`
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Index     int     `json:"index,omitempty"`
	RoomName  string  `json:"room_name,omitempty"`
	BedName   string  `json:"bed_name,omitempty"`
	FloorName string  `json:"floor_name,omitempty"`
}

// ResidentRef is the resolved resident
type ResidentRef struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	RoomName  string `json:"room_name,omitempty"`
	BedName   string `json:"bed_name,omitempty"`
	FloorName string `json:"floor_name,omitempty"`
}

// TaskRef is the resolved task template
type TaskRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Outcome is the result of resolving one transcript
// every resolution failure is an Outcome, errors are reserved for infrastructure
type Outcome struct {
	Kind         Kind            `json:"kind"`
	Message      string          `json:"message,omitempty"`
	Field        string          `json:"field,omitempty"`
	Options      []Option        `json:"options,omitempty"`
	Resident     *ResidentRef    `json:"resident,omitempty"`
	Task         *TaskRef        `json:"task,omitempty"`
	Status       *StatusLabel    `json:"status,omitempty"`
	Measurement  *vitals.Reading `json:"measurement,omitempty"`
	Confirmation string          `json:"confirmation,omitempty"`
}

// Transcript kinds, used in metrics and the audit trail
const (
	TranscriptTask        = "task"
	TranscriptMeasurement = "measurement"
)

// AuditEvent is one resolution written to the audit trail
type AuditEvent struct {
	At          time.Time
	RequestID   string
	ResidenceID string
	UserID      string
	Transcript  string
	Kind        string
	Outcome     Kind
	Field       string
	ResidentID  string
	TaskID      string
	Options     int
	Locale      string
	Elapsed     time.Duration
}
