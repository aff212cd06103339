package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sessionRepo "vetcare/database/repository/session"
	"vetcare/models"
	"vetcare/services/scheduler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

const (
	drMorning = "Dr. Mahesh Thilakarathna"
	drEvening = "Dr. Sarathchandra Paranavitharana"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	zone := time.FixedZone("SLST", 5*3600+30*60)
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, zone)
	svc := scheduler.New(
		sessionRepo.NewMemorySessionRepo(),
		scheduler.DefaultRoster(),
		scheduler.ClockFunc(func() time.Time { return now }),
		zone,
		nil,
		zaptest.NewLogger(t),
	)
	hb := NewHandlerBundle(NewSessionHandler(svc))

	r := gin.New()
	r.GET("/api/sessions", hb.ListSessionsHandler)
	r.POST("/api/sessions", hb.CreateSessionHandler)
	r.GET("/api/sessions/:id", hb.GetSessionHandler)
	r.PUT("/api/sessions/:id", hb.UpdateSessionHandler)
	r.DELETE("/api/sessions/:id", hb.DeleteSessionHandler)
	r.GET("/api/doctors", hb.ListDoctorsHandler)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type sessionEnvelope struct {
	Session models.Session `json:"session"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind string) errorEnvelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	e := decode[errorEnvelope](t, rec)
	if e.Error != kind {
		t.Fatalf("expected error kind %q, got %q (%s)", kind, e.Error, e.Message)
	}
	return e
}

func createMorning(t *testing.T, r *gin.Engine, date string) models.Session {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drMorning+`","sessionType":"Morning","sessionDate":"`+date+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[sessionEnvelope](t, rec).Session
}

func TestSessionHandlers_Lifecycle(t *testing.T) {
	r := newTestRouter(t)

	// Today, Morning doctor, Morning slot.
	a := createMorning(t, r, "2026-03-10")
	if a.Status != models.SessionStatusUpcoming || !a.IsAvailable {
		t.Fatalf("create today: unexpected session %+v", a)
	}

	// Wrong band for the doctor.
	rec := do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drMorning+`","sessionType":"Evening","sessionDate":"2026-03-10"}`)
	e := expectError(t, rec, http.StatusBadRequest, "DoctorSlotMismatch")
	if !strings.Contains(e.Message, "Morning") {
		t.Errorf("wrong band: expected required type in message, got %q", e.Message)
	}

	// Same doctor, band and day again.
	rec = do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drMorning+`","sessionType":"Morning","sessionDate":"2026-03-10T18:00:00+05:30"}`)
	expectError(t, rec, http.StatusBadRequest, "DuplicateSession")

	// Complete, then any edit is refused.
	path := "/api/sessions/" + a.ID.Hex()
	rec = do(t, r, http.MethodPut, path, `{"status":"Completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200 for Completed, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[sessionEnvelope](t, rec).Session; got.Status != models.SessionStatusCompleted {
		t.Fatalf("complete: expected Completed, got %s", got.Status)
	}
	rec = do(t, r, http.MethodPut, path, `{"specialNotice":"x"}`)
	expectError(t, rec, http.StatusBadRequest, "ImmutableSession")

	// Yesterday.
	rec = do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drEvening+`","sessionType":"Evening","sessionDate":"2026-03-09"}`)
	expectError(t, rec, http.StatusBadRequest, "PastDate")
}

func TestCreateSessionHandler_BadInput(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
		kind string
	}{
		{"malformed json", `{"doctorName":`, "InvalidRequest"},
		{"wrong type", `{"doctorName":"` + drMorning + `","sessionType":"Morning","sessionDate":"2026-03-11","isAvailable":"yes"}`, "InvalidRequest"},
		{"missing fields", `{"doctorName":"` + drMorning + `"}`, "MissingField"},
		{"unknown doctor", `{"doctorName":"Dr. Who","sessionType":"Morning","sessionDate":"2026-03-11"}`, "InvalidDoctor"},
		{"unknown band", `{"doctorName":"` + drMorning + `","sessionType":"Noon","sessionDate":"2026-03-11"}`, "InvalidSessionType"},
		{"bad date", `{"doctorName":"` + drMorning + `","sessionType":"Morning","sessionDate":"11/03/2026"}`, "InvalidDate"},
		{"bad date without doctor", `{"sessionDate":"garbage"}`, "MissingField"},
		{"bad date with unknown doctor", `{"doctorName":"Dr. Who","sessionType":"Morning","sessionDate":"garbage"}`, "InvalidDoctor"},
		{"bad date with wrong band", `{"doctorName":"` + drMorning + `","sessionType":"Evening","sessionDate":"garbage"}`, "DoctorSlotMismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/api/sessions", tt.body)
			expectError(t, rec, http.StatusBadRequest, tt.kind)
		})
	}
}

func TestCreateSessionHandler_Optionals(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drEvening+`","sessionType":"Evening","sessionDate":"2026-03-12","isAvailable":false,"specialNotice":"Vaccination clinic"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	s := decode[sessionEnvelope](t, rec).Session
	if s.IsAvailable || s.SpecialNotice != "Vaccination clinic" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestGetAndDeleteSessionHandlers(t *testing.T) {
	r := newTestRouter(t)

	expectError(t, do(t, r, http.MethodGet, "/api/sessions/not-hex", ""), http.StatusBadRequest, "InvalidId")
	expectError(t, do(t, r, http.MethodGet, "/api/sessions/65f0c0ffee0000000000beef", ""), http.StatusNotFound, "NotFound")
	expectError(t, do(t, r, http.MethodPut, "/api/sessions/65f0c0ffee0000000000beef", `{"isAvailable":false}`), http.StatusNotFound, "NotFound")

	s := createMorning(t, r, "2026-03-11")
	path := "/api/sessions/" + s.ID.Hex()

	rec := do(t, r, http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[sessionEnvelope](t, rec).Session; got.ID != s.ID {
		t.Fatalf("expected %s, got %s", s.ID.Hex(), got.ID.Hex())
	}

	rec = do(t, r, http.MethodDelete, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	expectError(t, do(t, r, http.MethodDelete, path, ""), http.StatusNotFound, "NotFound")
	expectError(t, do(t, r, http.MethodDelete, "/api/sessions/zzz", ""), http.StatusBadRequest, "InvalidId")
}

func TestUpdateSessionHandler(t *testing.T) {
	r := newTestRouter(t)
	s := createMorning(t, r, "2026-03-11")
	createMorning(t, r, "2026-03-12")
	path := "/api/sessions/" + s.ID.Hex()

	expectError(t, do(t, r, http.MethodPut, path, `{"sessionDate":"2026-03-12"}`), http.StatusBadRequest, "DuplicateSession")
	expectError(t, do(t, r, http.MethodPut, path, `{"sessionDate":"2026-03-01"}`), http.StatusBadRequest, "PastDate")
	expectError(t, do(t, r, http.MethodPut, path, `{"sessionDate":"soon"}`), http.StatusBadRequest, "InvalidDate")
	expectError(t, do(t, r, http.MethodPut, path, `{"status":"Paused"}`), http.StatusBadRequest, "InvalidStatus")
	expectError(t, do(t, r, http.MethodPut, path, `{"doctorName":"`+drEvening+`"}`), http.StatusBadRequest, "DoctorSlotMismatch")
	expectError(t, do(t, r, http.MethodPut, path, `{"specialNotice":"`+strings.Repeat("n", 201)+`"}`), http.StatusBadRequest, "InvalidNotice")
	expectError(t, do(t, r, http.MethodPut, path, `{"isAvailable":"no"}`), http.StatusBadRequest, "InvalidRequest")

	rec := do(t, r, http.MethodPut, path, `{"sessionDate":"2026-03-15","isAvailable":false,"specialNotice":"Half day"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[sessionEnvelope](t, rec).Session
	if got.IsAvailable || got.SpecialNotice != "Half day" || got.SessionDate.In(time.UTC).Format("2006-01-02T15:04") != "2026-03-14T18:30" {
		t.Fatalf("unexpected session %+v", got)
	}

	rec = do(t, r, http.MethodPut, path, `{"status":"Ongoing"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodPut, path, `{"status":"Upcoming"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 moving back to Upcoming, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodPut, path, `{"status":"Cancelled"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	expectError(t, do(t, r, http.MethodPut, path, `{"status":"Cancelled"}`), http.StatusBadRequest, "ImmutableSession")
}

func TestListSessionsHandler(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/sessions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sessions":[]`) {
		t.Fatalf("expected an empty array, got %s", rec.Body.String())
	}

	createMorning(t, r, "2026-03-12")
	createMorning(t, r, "2026-03-11")
	if rec := do(t, r, http.MethodPost, "/api/sessions",
		`{"doctorName":"`+drEvening+`","sessionType":"Evening","sessionDate":"2026-03-11"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/sessions", "")
	list := decode[struct {
		Sessions []models.Session `json:"sessions"`
	}](t, rec).Sessions
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	if list[0].SessionType != models.SessionTypeEvening || list[1].SessionType != models.SessionTypeMorning {
		t.Fatalf("expected Evening before Morning on the same day, got %s, %s", list[0].SessionType, list[1].SessionType)
	}
	if !list[2].SessionDate.After(list[1].SessionDate) {
		t.Fatal("expected ascending dates")
	}

	rec = do(t, r, http.MethodGet, "/api/sessions?from=2026-03-12&to=2026-03-12", "")
	list = decode[struct {
		Sessions []models.Session `json:"sessions"`
	}](t, rec).Sessions
	if len(list) != 1 {
		t.Fatalf("expected 1 session in range, got %d", len(list))
	}

	expectError(t, do(t, r, http.MethodGet, "/api/sessions?from=yesterday", ""), http.StatusBadRequest, "InvalidDate")
	expectError(t, do(t, r, http.MethodGet, "/api/sessions?from=2026-03-12&to=2026-03-11", ""), http.StatusBadRequest, "InvalidDate")
}

func TestListDoctorsHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/api/doctors", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doctors := decode[struct {
		Doctors []models.DoctorSlot `json:"doctors"`
	}](t, rec).Doctors
	if len(doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(doctors))
	}
	if doctors[0].DoctorName != drMorning || doctors[0].SessionType != models.SessionTypeMorning {
		t.Errorf("unexpected first doctor %+v", doctors[0])
	}
}
