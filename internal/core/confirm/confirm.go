// Package confirm renders the question read back to the operator before a
// resolved voice command is committed
package confirm

import (
	"residences/internal/core/vitals"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// message keys
const (
	keyTaskStatus = "task.status"
	keyTask       = "task"
	keyBP         = "measurement.bp"
	keyBPPulse    = "measurement.bp.pulse"
	keySpO2       = "measurement.spo2"
	keySpO2Pulse  = "measurement.spo2.pulse"
	keyWeight     = "measurement.weight"
	keyTemp       = "measurement.temperature"
	keyGeneric    = "measurement"
)

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

var texts = map[language.Tag]map[string]string{
	language.English: {
		keyTaskStatus: "Assign resident %s the task %s with status %s?",
		keyTask:       "Assign resident %s the task %s?",
		keyBP:         "Record blood pressure %s/%s mmHg for %s?",
		keyBPPulse:    "Record blood pressure %s/%s mmHg, pulse %s bpm for %s?",
		keySpO2:       "Record oxygen saturation %s%% for %s?",
		keySpO2Pulse:  "Record oxygen saturation %s%%, pulse %s bpm for %s?",
		keyWeight:     "Record weight %s kg for %s?",
		keyTemp:       "Record temperature %s °C for %s?",
		keyGeneric:    "Record measurement for %s?",
	},
	language.Spanish: {
		keyTaskStatus: "¿Quieres asignarle al residente %s la tarea %s con el estado %s?",
		keyTask:       "¿Quieres asignarle al residente %s la tarea %s?",
		keyBP:         "¿Registrar presión arterial %s/%s mmHg para %s?",
		keyBPPulse:    "¿Registrar presión arterial %s/%s mmHg, pulso %s lpm para %s?",
		keySpO2:       "¿Registrar saturación de oxígeno %s%% para %s?",
		keySpO2Pulse:  "¿Registrar saturación de oxígeno %s%%, pulso %s lpm para %s?",
		keyWeight:     "¿Registrar peso %s kg para %s?",
		keyTemp:       "¿Registrar temperatura %s °C para %s?",
		keyGeneric:    "¿Registrar medición para %s?",
	},
}

var cat = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range texts {
		for k, v := range msgs {
			if err := b.SetString(tag, k, v); err != nil {
				panic(err)
			}
		}
	}
	return b
}()

// Locale maps a requested locale such as "es-ES" or an Accept-Language value
// to a supported tag, English when nothing matches
func Locale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	_, idx := language.MatchStrings(matcher, s)
	return supported[idx]
}

// Builder renders confirmations in one locale
type Builder struct {
	tag language.Tag
}

// New returns a Builder for locale, see Locale
func New(locale string) Builder { return Builder{tag: Locale(locale)} }

// Tag is the locale the builder renders in
func (b Builder) Tag() language.Tag { return b.tag }

func (b Builder) sprintf(key string, args ...any) string {
	return message.NewPrinter(b.tag, message.Catalog(cat)).Sprintf(key, args...)
}

// Task renders the task assignment question
// status is omitted unless it was matched against a task with a status vocabulary
func (b Builder) Task(resident, task, status string, hasStatuses bool) string {
	if status != "" && hasStatuses {
		return b.sprintf(keyTaskStatus, resident, task, status)
	}
	return b.sprintf(keyTask, resident, task)
}

// Measurement renders the measurement recording question
func (b Builder) Measurement(resident string, r vitals.Reading) string {
	switch r.Type {
	case vitals.BloodPressure:
		if r.Systolic == nil || r.Diastolic == nil {
			break
		}
		if r.PulseBPM != nil {
			return b.sprintf(keyBPPulse, itoa(*r.Systolic), itoa(*r.Diastolic), itoa(*r.PulseBPM), resident)
		}
		return b.sprintf(keyBP, itoa(*r.Systolic), itoa(*r.Diastolic), resident)
	case vitals.OxygenSaturation:
		if r.SpO2 == nil {
			break
		}
		if r.PulseBPM != nil {
			return b.sprintf(keySpO2Pulse, itoa(*r.SpO2), itoa(*r.PulseBPM), resident)
		}
		return b.sprintf(keySpO2, itoa(*r.SpO2), resident)
	case vitals.Weight:
		if r.WeightKg != nil {
			return b.sprintf(keyWeight, vitals.FormatNumber(*r.WeightKg), resident)
		}
	case vitals.Temperature:
		if r.TemperatureC != nil {
			return b.sprintf(keyTemp, vitals.FormatNumber(*r.TemperatureC), resident)
		}
	}
	return b.sprintf(keyGeneric, resident)
}

func itoa(v int) string { return vitals.FormatNumber(float64(v)) }
