// Package http provides http transport for voice resolution
package http

import (
	stdhttp "net/http"

	"residences/internal/modkit/httpkit"
	"residences/internal/services/voice/domain"
)

// Register mounts voice endpoints on a router already scoped to a residence
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// transcript resolution, failures come back as outcomes
	httpkit.PostJSON[domain.ParseRequest](r, "/tasks/parse", h.parseTask)
	httpkit.PostJSON[domain.ParseRequest](r, "/measurements/parse", h.parseMeasurement)

	// commit what the operator confirmed
	httpkit.PostJSON[domain.ApplyTaskInput](r, "/tasks/apply", h.applyTask)
	httpkit.PostJSON[domain.MeasurementInput](r, "/measurements/apply", h.applyMeasurement)
}

type handlers struct{ svc domain.ServicePort }

// parseInput fills caller and scope from the request context
// an explicit body locale wins over Accept-Language
func parseInput(r *stdhttp.Request, in domain.ParseRequest) (domain.ParseInput, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return domain.ParseInput{}, err
	}
	rid, err := httpkit.Residence(r)
	if err != nil {
		return domain.ParseInput{}, err
	}
	locale := in.Locale
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}
	return domain.ParseInput{ResidenceID: rid, UserID: uid, Transcript: in.Transcript, Locale: locale}, nil
}

// swagger:route POST /residences/{residenceID}/voice/tasks/parse Voice voiceParseTask
// @Summary Resolve a task assignment transcript
// @Tags Voice
// @Accept json
// @Produce json
// @Param residenceID path string true "Residence id"
// @Param payload body domain.ParseRequest true "Transcript"
// @Success 200 {object} domain.Outcome "ok"
// @Failure 403 {object} net.Envelope "no access to the residence"
// @Router /residences/{residenceID}/voice/tasks/parse [post]
func (h *handlers) parseTask(r *stdhttp.Request, in domain.ParseRequest) (any, error) {
	pin, err := parseInput(r, in)
	if err != nil {
		return nil, err
	}
	return h.svc.ParseTask(r.Context(), pin)
}

// swagger:route POST /residences/{residenceID}/voice/measurements/parse Voice voiceParseMeasurement
// @Summary Resolve a measurement transcript
// @Tags Voice
// @Accept json
// @Produce json
// @Param residenceID path string true "Residence id"
// @Param payload body domain.ParseRequest true "Transcript"
// @Success 200 {object} domain.Outcome "ok"
// @Router /residences/{residenceID}/voice/measurements/parse [post]
func (h *handlers) parseMeasurement(r *stdhttp.Request, in domain.ParseRequest) (any, error) {
	pin, err := parseInput(r, in)
	if err != nil {
		return nil, err
	}
	return h.svc.ParseMeasurement(r.Context(), pin)
}

// swagger:route POST /residences/{residenceID}/voice/tasks/apply Voice voiceApplyTask
// @Summary Record a confirmed task application
// @Tags Voice
// @Accept json
// @Produce json
// @Param residenceID path string true "Residence id"
// @Param payload body domain.ApplyTaskInput true "Resolved task"
// @Success 201 {object} domain.Applied "created"
// @Router /residences/{residenceID}/voice/tasks/apply [post]
func (h *handlers) applyTask(r *stdhttp.Request, in domain.ApplyTaskInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	rid, err := httpkit.Residence(r)
	if err != nil {
		return nil, err
	}
	in.UserID, in.ResidenceID = uid, rid
	out, err := h.svc.ApplyTask(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /residences/{residenceID}/voice/measurements/apply Voice voiceApplyMeasurement
// @Summary Record a confirmed measurement
// @Tags Voice
// @Accept json
// @Produce json
// @Param residenceID path string true "Residence id"
// @Param payload body domain.MeasurementInput true "Resolved measurement"
// @Success 201 {object} domain.Applied "created"
// @Router /residences/{residenceID}/voice/measurements/apply [post]
func (h *handlers) applyMeasurement(r *stdhttp.Request, in domain.MeasurementInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	rid, err := httpkit.Residence(r)
	if err != nil {
		return nil, err
	}
	in.UserID, in.ResidenceID = uid, rid
	out, err := h.svc.RecordMeasurement(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}
