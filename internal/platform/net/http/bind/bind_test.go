package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "residences/internal/platform/errors"
)

type parseReq struct {
	Transcript string `json:"transcript" validate:"required,notblank,max=500"`
	Locale     string `json:"locale,omitempty" validate:"omitempty,oneof=en es"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_OK(t *testing.T) {
	got, err := ParseJSON[parseReq](post(`{"transcript":"Juan Pérez baño completado","locale":"es"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transcript != "Juan Pérez baño completado" || got.Locale != "es" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_Rejects(t *testing.T) {
	cases := []struct {
		name string
		req  *http.Request
		code perr.ErrorCode
	}{
		{"no body", httptest.NewRequest(http.MethodPost, "/", http.NoBody), perr.ErrorCodeJSON},
		{"whitespace body", post("   "), perr.ErrorCodeJSON},
		{"bad json", post(`{"transcript":`), perr.ErrorCodeJSON},
		{"unknown field", post(`{"transcript":"x","extra":1}`), perr.ErrorCodeJSON},
		{"trailing", post(`{"transcript":"x"}{}`), perr.ErrorCodeJSON},
		{"missing", post(`{}`), perr.ErrorCodeValidation},
		{"blank", post(`{"transcript":"   "}`), perr.ErrorCodeValidation},
		{"bad locale", post(`{"transcript":"x","locale":"fr"}`), perr.ErrorCodeValidation},
	}
	for _, c := range cases {
		_, err := ParseJSON[parseReq](c.req)
		if perr.CodeOf(err) != c.code {
			t.Fatalf("%s: code = %v want %v (%v)", c.name, perr.CodeOf(err), c.code, err)
		}
	}
}

func TestParseJSON_FieldAndMessage(t *testing.T) {
	_, err := ParseJSON[parseReq](post(`{"transcript":"   "}`))
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected perr error, got %v", err)
	}
	if e.Field() != "transcript" {
		t.Fatalf("field = %q want transcript", e.Field())
	}
	if e.Message() != "transcript must not be blank" {
		t.Fatalf("message = %q", e.Message())
	}
}

func TestStruct_SpanishTranslator(t *testing.T) {
	err := Get().Struct(parseReq{Transcript: " "}, "es-ES,es;q=0.9")
	e, _ := perr.As(err)
	if e == nil || e.Message() != "transcript no puede estar vacío" {
		t.Fatalf("unexpected %v", err)
	}
}

func TestStruct_MaxMessage(t *testing.T) {
	err := Get().Struct(parseReq{Transcript: strings.Repeat("a", 501)})
	e, _ := perr.As(err)
	if e == nil || e.Message() != "transcript must be at most 500" {
		t.Fatalf("unexpected %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	type even struct {
		N int `json:"n" validate:"even"`
	}
	if err := RegisterValidation("even", func(fl FieldLevel) bool { return fl.Field().Int()%2 == 0 }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Get().Struct(even{N: 2}); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if err := Get().Struct(even{N: 3}); perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
