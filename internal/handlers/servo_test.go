package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"controlling_servo/internal/service"
)

var errHandlerTest = errors.New("register write failed")

func TestSetServo_ValidationReasonsAreDistinct(t *testing.T) {
	servo := &mockServo{}
	s := &service.Service{
		Servo:      servo,
		Monitoring: &mockMonitoring{status: service.Status{Status: "ok", Position: 90}},
	}
	r := newTestRouter(s)

	cases := []struct {
		name       string
		body       string
		wantReason string
	}{
		{name: "empty body", body: "", wantReason: reasonMissingBody},
		{name: "whitespace body", body: "   \n", wantReason: reasonMissingBody},
		{name: "malformed json", body: "{not json", wantReason: reasonInvalidJSON},
		{name: "wrong value type", body: `{"position":"left"}`, wantReason: reasonInvalidJSON},
		{name: "missing field", body: `{"angle":45}`, wantReason: reasonMissingField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/servo", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400 (body=%s)", w.Code, w.Body.String())
			}
			if got := w.Body.String(); got != tc.wantReason {
				t.Fatalf("reason: got %q, want %q", got, tc.wantReason)
			}
		})
	}

	// None of the rejected requests may reach the service.
	if servo.setCalls != 0 {
		t.Fatalf("SetPosition called %d times for invalid payloads", servo.setCalls)
	}
}

func TestSetServo_OutOfRangeRejectedWithReason(t *testing.T) {
	servo := &mockServo{setErr: service.ErrOutOfRange}
	s := &service.Service{
		Servo:      servo,
		Monitoring: &mockMonitoring{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/servo", strings.NewReader(`{"position":200}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != reasonOutOfRange {
		t.Fatalf("reason: got %q, want %q", got, reasonOutOfRange)
	}
	if servo.setCalls != 1 || servo.lastSet != 200 {
		t.Fatalf("service call: calls=%d last=%d", servo.setCalls, servo.lastSet)
	}
}

func TestSetServo_SuccessReturnsAppliedPosition(t *testing.T) {
	servo := &mockServo{}
	s := &service.Service{
		Servo:      servo,
		Monitoring: &mockMonitoring{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/servo", bytes.NewBufferString(`{"position":45}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status   string `json:"status"`
		Position int    `json:"position"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || resp.Position != 45 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if servo.setCalls != 1 || servo.lastSet != 45 {
		t.Fatalf("service call: calls=%d last=%d", servo.setCalls, servo.lastSet)
	}
}

func TestSetServo_ZeroPositionIsNotMissingField(t *testing.T) {
	servo := &mockServo{}
	s := &service.Service{
		Servo:      servo,
		Monitoring: &mockMonitoring{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/servo", strings.NewReader(`{"position":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body=%s", w.Code, w.Body.String())
	}
	if servo.lastSet != 0 {
		t.Fatalf("expected explicit zero to pass through, got %d", servo.lastSet)
	}
}

func TestSetServo_DriverFailureIsInternalError(t *testing.T) {
	servo := &mockServo{setErr: errHandlerTest}
	s := &service.Service{
		Servo:      servo,
		Monitoring: &mockMonitoring{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/servo", strings.NewReader(`{"position":45}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != errMoveServo {
		t.Fatalf("error message: got %q, want %q", resp.Error, errMoveServo)
	}
}

func TestGetStatus_ReturnsSnapshot(t *testing.T) {
	s := &service.Service{
		Monitoring: &mockMonitoring{status: service.Status{
			Status:       "ok",
			Position:     135,
			UptimeMillis: 42000,
			WifiStrength: -48,
		}},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" || resp["position"] != float64(135) {
		t.Fatalf("unexpected body: %v", resp)
	}
	if resp["uptime"] != float64(42000) || resp["wifi_strength"] != float64(-48) {
		t.Fatalf("uptime/wifi: %v", resp)
	}
}

func TestNotFound_ListsEndpointsAndPosition(t *testing.T) {
	s := &service.Service{
		Monitoring: &mockMonitoring{status: service.Status{Position: 72}},
	}
	r := newTestRouter(s)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/servo"},   // wrong method on a known path
		{http.MethodDelete, "/status"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(probe.method, probe.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: status %d, want 404", probe.method, probe.path, w.Code)
		}
		body := w.Body.String()
		for _, want := range []string{"POST /servo", "GET /status", "Current position: 72"} {
			if !strings.Contains(body, want) {
				t.Fatalf("%s %s: help text missing %q:\n%s", probe.method, probe.path, want, body)
			}
		}
	}
}

func TestHealth(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("body: %s", w.Body.String())
	}
}
