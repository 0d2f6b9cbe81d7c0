package repository

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/safespot/safespot-backend/internal/database"
	"github.com/safespot/safespot-backend/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

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
	return db
}

func TestSampleRepositoryRoundTrip(t *testing.T) {
	repo := NewSampleRepository(testDB(t))

	lat, lng := 9.9252, 78.1198
	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	sample := &models.MotionSample{
		UserID:     "u1",
		Latitude:   &lat,
		Longitude:  &lng,
		Speed:      1.5,
		AccelX:     0.4,
		Intensity:  models.IntensityModerate,
		IsAbnormal: false,
		Timestamp:  base,
	}

	id, err := repo.Insert(sample)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	samples, err := repo.GetByRange("u1", base.Add(-time.Hour), base.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	got := samples[0]
	if got.Intensity != models.IntensityModerate || got.Speed != 1.5 {
		t.Fatalf("unexpected sample %+v", got)
	}
	if got.Latitude == nil || *got.Latitude != lat {
		t.Fatalf("unexpected latitude %v", got.Latitude)
	}
	if !got.Timestamp.Equal(base) {
		t.Fatalf("expected timestamp %v, got %v", base, got.Timestamp)
	}
}

func TestSampleRepositoryRangeIsHalfOpen(t *testing.T) {
	repo := NewSampleRepository(testDB(t))

	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, time.Hour, 24 * time.Hour} {
		s := &models.MotionSample{UserID: "u1", Intensity: models.IntensityIdle, Timestamp: base.Add(offset)}
		if _, err := repo.Insert(s); err != nil {
			t.Fatal(err)
		}
	}

	samples, err := repo.GetByRange("u1", base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples inside [start, end), got %d", len(samples))
	}
}

func TestSampleRepositoryLatestNewestFirst(t *testing.T) {
	repo := NewSampleRepository(testDB(t))

	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := &models.MotionSample{UserID: "u1", Intensity: models.IntensityIdle, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if _, err := repo.Insert(s); err != nil {
			t.Fatal(err)
		}
	}

	samples, err := repo.GetLatest("u1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if !samples[0].Timestamp.After(samples[1].Timestamp) {
		t.Fatal("expected newest first")
	}
}

func TestSampleRepositoryLastWithLocation(t *testing.T) {
	repo := NewSampleRepository(testDB(t))

	if s, err := repo.GetLastWithLocation("u1"); err != nil || s != nil {
		t.Fatalf("expected nil for unknown user, got %v, %v", s, err)
	}

	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(&models.MotionSample{UserID: "u1", Intensity: models.IntensityIdle, Timestamp: base}); err != nil {
		t.Fatal(err)
	}
	lat, lng := 9.9252, 78.1198
	if _, err := repo.Insert(&models.MotionSample{UserID: "u1", Latitude: &lat, Longitude: &lng, Intensity: models.IntensityIdle, Timestamp: base.Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}

	s, err := repo.GetLastWithLocation("u1")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Latitude == nil || *s.Latitude != lat {
		t.Fatalf("expected located sample, got %+v", s)
	}
}

func TestJourneyPointRetentionTrigger(t *testing.T) {
	repo := NewJourneyRepository(testDB(t))

	old := &models.JourneyPoint{
		UserID:    "u1",
		DateKey:   "2024-01-01",
		Timestamp: time.Now().UTC().Add(-40 * 24 * time.Hour),
		Latitude:  9.9,
		Longitude: 78.1,
	}
	if _, err := repo.InsertPoint(old); err != nil {
		t.Fatal(err)
	}

	fresh := &models.JourneyPoint{
		UserID:    "u1",
		DateKey:   "2024-03-11",
		Timestamp: time.Now().UTC(),
		Latitude:  9.9,
		Longitude: 78.1,
	}
	if _, err := repo.InsertPoint(fresh); err != nil {
		t.Fatal(err)
	}

	stale, err := repo.GetPointsByDay("u1", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Fatalf("expected retention trigger to purge 40-day-old points, found %d", len(stale))
	}

	kept, err := repo.GetPointsByDay("u1", "2024-03-11")
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected fresh point to survive, found %d", len(kept))
	}
}

func TestJourneyEventsByDayFiltersType(t *testing.T) {
	repo := NewJourneyRepository(testDB(t))

	lat, lng := 9.9, 78.1
	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	events := []models.JourneyEvent{
		{UserID: "u1", DateKey: "2024-03-11", Timestamp: base, Type: models.EventFlag, Title: "f1", Subtitle: "s", Latitude: &lat, Longitude: &lng},
		{UserID: "u1", DateKey: "2024-03-11", Timestamp: base.Add(time.Minute), Type: models.EventStart, Title: "start", Subtitle: "s"},
		{UserID: "u1", DateKey: "2024-03-12", Timestamp: base.Add(24 * time.Hour), Type: models.EventFlag, Title: "f2", Subtitle: "s"},
	}
	for i := range events {
		if _, err := repo.InsertEvent(&events[i]); err != nil {
			t.Fatal(err)
		}
	}

	flags, err := repo.GetEventsByDay("u1", "2024-03-11", models.EventFlag)
	if err != nil {
		t.Fatal(err)
	}
	if len(flags) != 1 || flags[0].Title != "f1" {
		t.Fatalf("unexpected flags %+v", flags)
	}
}

func TestProtectorRepositoryCRUD(t *testing.T) {
	repo := NewProtectorRepository(testDB(t))

	p := &models.Protector{ID: "p1", UserID: "u1", Name: "Amma", Phone: "9876543210"}
	if err := repo.Insert(p); err != nil {
		t.Fatal(err)
	}

	list, err := repo.GetByUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Amma" {
		t.Fatalf("unexpected protectors %+v", list)
	}

	removed, err := repo.Delete("p1")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected delete to report a removed row")
	}

	removed, err = repo.Delete("p1")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("expected second delete to find nothing")
	}
}

func TestUserRepositoryUpsert(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	if u, err := repo.Get("u1"); err != nil || u != nil {
		t.Fatalf("expected nil for unknown user, got %v, %v", u, err)
	}

	if err := repo.Insert(&models.UserProfile{UserID: "u1", Name: "u1"}); err != nil {
		t.Fatal(err)
	}

	name := "Swetha"
	if err := repo.Upsert("u1", models.UserProfileUpdate{Name: &name}); err != nil {
		t.Fatal(err)
	}

	u, err := repo.Get("u1")
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Name != "Swetha" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Email != "" {
		t.Fatalf("untouched fields should stay empty, got %q", u.Email)
	}

	phone := "9876543210"
	if err := repo.Upsert("u2", models.UserProfileUpdate{Phone: &phone}); err != nil {
		t.Fatal(err)
	}
	u2, err := repo.Get("u2")
	if err != nil {
		t.Fatal(err)
	}
	if u2 == nil || u2.Phone != phone {
		t.Fatalf("upsert should create missing users, got %+v", u2)
	}
}
