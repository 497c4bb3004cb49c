package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"residences/internal/modkit/httpkit"
	perr "residences/internal/platform/errors"
	pnet "residences/internal/platform/net"
	phttp "residences/internal/platform/net/http"
	"residences/internal/platform/net/middleware"
	"residences/internal/services/voice/domain"
	voicehttp "residences/internal/services/voice/http"
)

const residence = "0b8d3c2e-5a7f-4c1e-9d3b-2f6a8e4c1d70"

type stubSvc struct {
	lastParse domain.ParseInput
	lastApply domain.ApplyTaskInput
	lastMeas  domain.MeasurementInput
	err       error
}

func (s *stubSvc) ParseTask(_ context.Context, in domain.ParseInput) (domain.Outcome, error) {
	s.lastParse = in
	if s.err != nil {
		return domain.Outcome{}, s.err
	}
	return domain.Outcome{Kind: domain.KindResidentNotFound, Field: "resident", Message: "no resident matches"}, nil
}

func (s *stubSvc) ParseMeasurement(_ context.Context, in domain.ParseInput) (domain.Outcome, error) {
	s.lastParse = in
	return domain.Outcome{Kind: domain.KindSuccess, Confirmation: "Record weight 70 kg for Juan Pérez?"}, s.err
}

func (s *stubSvc) ApplyTask(_ context.Context, in domain.ApplyTaskInput) (domain.Applied, error) {
	s.lastApply = in
	return domain.Applied{ID: "app-1"}, s.err
}

func (s *stubSvc) RecordMeasurement(_ context.Context, in domain.MeasurementInput) (domain.Applied, error) {
	s.lastMeas = in
	return domain.Applied{ID: "meas-1"}, s.err
}

// asUser stands in for the auth middleware
func asUser(uid string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}

func router(s domain.ServicePort, uid string) http.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	mw := []middleware.Middleware{httpkit.ResidenceScope("residenceID")}
	if uid != "" {
		mw = append([]middleware.Middleware{asUser(uid)}, mw...)
	}
	httpkit.MountUnder(r, "/residences/{residenceID}/voice", mw, func(sub httpkit.Router) {
		voicehttp.Register(sub, s)
	})
	return mux
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       string          `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func post(t *testing.T, h http.Handler, path, body string, hdr map[string]string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var e envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, e
}

func base(path string) string { return "/residences/" + residence + "/voice" + path }

func TestParseTask_OutcomeIsOK(t *testing.T) {
	s := &stubSvc{}
	code, env := post(t, router(s, "u-1"), base("/tasks/parse"),
		`{"transcript":"Luis Gómez baño"}`, map[string]string{"Accept-Language": "es-ES,es;q=0.9"})
	if code != http.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var out domain.Outcome
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %v", err)
	}
	if out.Kind != domain.KindResidentNotFound || out.Field != "resident" {
		t.Fatalf("outcome = %+v", out)
	}
	want := domain.ParseInput{ResidenceID: residence, UserID: "u-1", Transcript: "Luis Gómez baño", Locale: "es-ES,es;q=0.9"}
	if s.lastParse != want {
		t.Fatalf("input = %+v", s.lastParse)
	}
}

func TestParse_BodyLocaleWins(t *testing.T) {
	s := &stubSvc{}
	_, _ = post(t, router(s, "u-1"), base("/measurements/parse"),
		`{"transcript":"Peso de Juan Pérez 70","locale":"en"}`, map[string]string{"Accept-Language": "es"})
	if s.lastParse.Locale != "en" {
		t.Fatalf("locale = %q", s.lastParse.Locale)
	}
}

func TestParse_RequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		body   string
		uid    string
		status int
		code   string
	}{
		{"blank transcript", base("/tasks/parse"), `{"transcript":"   "}`, "u-1", http.StatusBadRequest, "validation"},
		{"bad locale", base("/tasks/parse"), `{"transcript":"x","locale":"fr"}`, "u-1", http.StatusBadRequest, "validation"},
		{"bad json", base("/tasks/parse"), `{"transcript":`, "u-1", http.StatusBadRequest, "json"},
		{"no user", base("/tasks/parse"), `{"transcript":"Juan Pérez baño"}`, "", http.StatusUnauthorized, "unauthorized"},
		{"bad residence", "/residences/nope/voice/tasks/parse", `{"transcript":"Juan Pérez baño"}`, "u-1", http.StatusUnprocessableEntity, "invalid_argument"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, env := post(t, router(&stubSvc{}, c.uid), c.path, c.body, nil)
			if code != c.status || env.Code != c.code {
				t.Fatalf("status = %d code = %q (%s)", code, env.Code, env.Error)
			}
		})
	}
}

func TestParse_ServiceErrorMapsStatus(t *testing.T) {
	s := &stubSvc{err: perr.Forbiddenf("no access to this residence")}
	code, env := post(t, router(s, "u-1"), base("/tasks/parse"), `{"transcript":"Juan Pérez baño"}`, nil)
	if code != http.StatusForbidden || env.Code != "forbidden" {
		t.Fatalf("status = %d code = %q", code, env.Code)
	}
}

func TestApplyTask_Created(t *testing.T) {
	s := &stubSvc{}
	body := `{"resident_id":"6f1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","task_template_id":"7a1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","status_index":2}`
	code, env := post(t, router(s, "u-1"), base("/tasks/apply"), body, nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	if s.lastApply.ResidenceID != residence || s.lastApply.UserID != "u-1" || *s.lastApply.StatusIndex != 2 {
		t.Fatalf("input = %+v", s.lastApply)
	}
	var out domain.Applied
	_ = json.Unmarshal(env.Data, &out)
	if out.ID != "app-1" {
		t.Fatalf("data = %s", env.Data)
	}
}

func TestApplyTask_Validation(t *testing.T) {
	cases := []struct {
		body string
		code string
	}{
		{`{"resident_id":"not-a-uuid","task_template_id":"7a1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b"}`, "validation"},
		{`{"resident_id":"6f1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","task_template_id":"7a1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","status_index":9}`, "validation"},
		// the residence comes from the path only
		{`{"resident_id":"6f1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","task_template_id":"7a1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","residence_id":"x"}`, "json"},
	}
	for _, c := range cases {
		code, env := post(t, router(&stubSvc{}, "u-1"), base("/tasks/apply"), c.body, nil)
		if code != http.StatusBadRequest || env.Code != c.code {
			t.Fatalf("%s: status = %d code = %q", c.body, code, env.Code)
		}
	}
}

func TestApplyMeasurement_Created(t *testing.T) {
	s := &stubSvc{}
	body := `{"resident_id":"6f1c2d3e-4b5a-4978-8a1b-2c3d4e5f6a7b","type":"weight","weight_kg":71.5}`
	code, _ := post(t, router(s, "u-1"), base("/measurements/apply"), body, nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d", code)
	}
	if s.lastMeas.WeightKg == nil || *s.lastMeas.WeightKg != 71.5 || s.lastMeas.ResidenceID != residence {
		t.Fatalf("input = %+v", s.lastMeas)
	}
}
