package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/safespot/safespot-backend/internal/config"
	"github.com/safespot/safespot-backend/internal/database"
	"github.com/safespot/safespot-backend/internal/handler"
	"github.com/safespot/safespot-backend/internal/notify"
	"github.com/safespot/safespot-backend/internal/repository"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/internal/storage"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// One in-memory connection only; each new connection would be a fresh DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatal(err)
	}

	sampleRepo := repository.NewSampleRepository(db)
	journeyRepo := repository.NewJourneyRepository(db)
	protectorRepo := repository.NewProtectorRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Unconfigured messaging clients; alert dispatch only logs in tests.
	dispatcher := notify.NewDispatcher(notify.NewFast2SMSClient(""), notify.NewWhatsAppClient("", ""))
	alertService := service.NewAlertService(protectorRepo, dispatcher)

	imageHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/demo/avatars/a.png"}`)
	}))
	t.Cleanup(imageHost.Close)
	avatarStore := storage.NewCloudinaryClient("demo", "key", "secret")
	avatarStore.BaseURL = imageHost.URL

	h := Handlers{
		History:   handler.NewHistoryHandler(service.NewHistoryService(sampleRepo, journeyRepo, alertService)),
		Analytics: handler.NewAnalyticsHandler(service.NewAnalyticsService(sampleRepo)),
		Journey:   handler.NewJourneyHandler(service.NewJourneyService(journeyRepo)),
		Protector: handler.NewProtectorHandler(service.NewProtectorService(protectorRepo)),
		User:      handler.NewUserHandler(service.NewUserService(userRepo)),
		SOS:       handler.NewSOSHandler(alertService),
		Upload:    handler.NewUploadHandler(service.NewUploadService(avatarStore)),
	}

	cfg := &config.Config{IngestRatePerMin: 10000}
	return SetupRouter(cfg, h)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestHealthRoute(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestIngestClassifiesSample(t *testing.T) {
	r := testRouter(t)

	w, env := do(t, r, "POST", "/api/v1/history",
		`{"userId":"u1","speed":1.8,"accelX":0.4,"accelY":0.2,"accelZ":0.1}`)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected success, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Intensity  string `json:"intensity"`
		IsAbnormal bool   `json:"isAbnormal"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Intensity != "Moderate" || result.IsAbnormal {
		t.Fatalf("unexpected classification %+v", result)
	}

	_, env = do(t, r, "GET", "/api/v1/history/u1/latest", "")
	var latest struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &latest); err != nil {
		t.Fatal(err)
	}
	if latest.Count != 1 {
		t.Fatalf("expected 1 stored sample, got %d", latest.Count)
	}
}

func TestIngestRejectsMissingUser(t *testing.T) {
	r := testRouter(t)

	w, _ := do(t, r, "POST", "/api/v1/history", `{"speed":1.0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDaySummaryRejectsBadDate(t *testing.T) {
	r := testRouter(t)

	w, _ := do(t, r, "GET", "/api/v1/history/u1/summary/day?date=yesterday", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLiveLocationLifecycle(t *testing.T) {
	r := testRouter(t)

	w, _ := do(t, r, "GET", "/api/v1/live/u1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any located sample, got %d", w.Code)
	}

	if w, _ := do(t, r, "POST", "/api/v1/history",
		`{"userId":"u1","lat":9.9252,"lng":78.1198,"speed":0.5}`); w.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d", w.Code)
	}

	w, env := do(t, r, "GET", "/api/v1/live/u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var loc struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.Unmarshal(env.Data, &loc); err != nil {
		t.Fatal(err)
	}
	if loc.Lat != 9.9252 || loc.Lng != 78.1198 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestJourneyPointAndToday(t *testing.T) {
	r := testRouter(t)

	w, env := do(t, r, "POST", "/api/v1/journey/point",
		`{"userId":"u1","lat":9.9252,"lng":78.1198,"speed":1.2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var added struct {
		DateKey string `json:"dateKey"`
	}
	if err := json.Unmarshal(env.Data, &added); err != nil {
		t.Fatal(err)
	}
	if added.DateKey == "" {
		t.Fatal("expected a derived date key")
	}

	w, env = do(t, r, "GET", "/api/v1/journey/u1/today", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var today struct {
		Summary struct {
			Sessions string `json:"sessions"`
			Zones    string `json:"zones"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &today); err != nil {
		t.Fatal(err)
	}
	if today.Summary.Sessions != "1" {
		t.Fatalf("expected 1 session, got %q", today.Summary.Sessions)
	}
	if today.Summary.Zones != "Mostly Safe" {
		t.Fatalf("unexpected zones card %q", today.Summary.Zones)
	}
}

func TestProtectorRoutes(t *testing.T) {
	r := testRouter(t)

	w, env := do(t, r, "POST", "/api/v1/protectors",
		`{"userId":"u1","name":"Amma","phone":"9876543210"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated protector id")
	}

	_, env = do(t, r, "GET", "/api/v1/protectors/u1", "")
	var list []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Amma" {
		t.Fatalf("unexpected protectors %+v", list)
	}

	if w, _ := do(t, r, "DELETE", "/api/v1/protectors/"+created.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w, _ := do(t, r, "DELETE", "/api/v1/protectors/"+created.ID, ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestSOSWithoutProtectors(t *testing.T) {
	r := testRouter(t)

	w, env := do(t, r, "POST", "/api/v1/sos/trigger",
		`{"userId":"u1","lat":9.9,"lng":78.1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Message != "No protectors found" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestAvatarUpload(t *testing.T) {
	r := testRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/upload/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	var uploaded struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(env.Data, &uploaded); err != nil {
		t.Fatal(err)
	}
	if uploaded.URL != "https://res.cloudinary.com/demo/avatars/a.png" {
		t.Fatalf("unexpected url %q", uploaded.URL)
	}
}

func TestAvatarUploadWithoutFile(t *testing.T) {
	r := testRouter(t)

	w, env := do(t, r, "POST", "/api/v1/upload/avatar", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Message != "No image provided" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestUserProfileRoutes(t *testing.T) {
	r := testRouter(t)

	// First read seeds a default profile.
	w, env := do(t, r, "GET", "/api/v1/user/u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var profile struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatal(err)
	}
	if profile.Name != "u1" {
		t.Fatalf("expected seeded name, got %q", profile.Name)
	}

	_, env = do(t, r, "PUT", "/api/v1/user/u1", `{"name":"Swetha"}`)
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Swetha" {
		t.Fatalf("expected updated name, got %q", profile.Name)
	}
}
