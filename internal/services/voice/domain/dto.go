package domain

import (
	"time"

	"residences/internal/core/vitals"
)

// ParseInput is one transcript to resolve for a caller in a residence
type ParseInput struct {
	ResidenceID string
	UserID      string
	Transcript  string
	Locale      string
}

// ParseRequest is the body of the parse endpoints
type ParseRequest struct {
	Transcript string `json:"transcript" validate:"required,notblank,max=500"`
	Locale     string `json:"locale,omitempty" validate:"omitempty,oneof=en es"`
}

// ApplyTaskInput records a resolved task for a resident
type ApplyTaskInput struct {
	ResidenceID    string `json:"-"`
	UserID         string `json:"-"`
	ResidentID     string `json:"resident_id" validate:"required,uuid"`
	TaskTemplateID string `json:"task_template_id" validate:"required,uuid"`
	StatusIndex    *int   `json:"status_index,omitempty" validate:"omitempty,min=1,max=6"`
}

// MeasurementInput records a resolved measurement for a resident
type MeasurementInput struct {
	ResidenceID  string     `json:"-"`
	UserID       string     `json:"-"`
	ResidentID   string     `json:"resident_id" validate:"required,uuid"`
	Type         string     `json:"type" validate:"required,oneof=bp spo2 weight temperature"`
	Systolic     *int       `json:"systolic,omitempty"`
	Diastolic    *int       `json:"diastolic,omitempty"`
	PulseBPM     *int       `json:"pulse_bpm,omitempty"`
	SpO2         *int       `json:"spo2,omitempty"`
	WeightKg     *float64   `json:"weight_kg,omitempty"`
	TemperatureC *float64   `json:"temperature_c,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
}

// Reading returns the measurement values as a vitals reading
func (m MeasurementInput) Reading() vitals.Reading {
	return vitals.Reading{
		Type:         vitals.Type(m.Type),
		Systolic:     m.Systolic,
		Diastolic:    m.Diastolic,
		PulseBPM:     m.PulseBPM,
		SpO2:         m.SpO2,
		WeightKg:     m.WeightKg,
		TemperatureC: m.TemperatureC,
	}
}

// Applied is the id of a written record
type Applied struct {
	ID string `json:"id"`
}

// TaskApplication is the row ApplyTask writes
type TaskApplication struct {
	ID             string
	ResidenceID    string
	ResidentID     string
	TaskTemplateID string
	AppliedBy      string
	StatusIndex    *int
	StatusText     *string
}

// MeasurementRecord is the row RecordMeasurement writes
type MeasurementRecord struct {
	ID          string
	ResidenceID string
	ResidentID  string
	RecordedBy  string
	Reading     vitals.Reading
	TakenAt     time.Time
}
