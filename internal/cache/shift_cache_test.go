package cache

import (
	"testing"

	"fuelpos-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestCache(t *testing.T) *ShiftCache {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.CachedActiveShift{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestKeyRendering(t *testing.T) {
	if got := IdentityKey("emp-7").storageKey(); got != "activeShift_emp-7" {
		t.Errorf("identity key = %q", got)
	}
	if got := SystemKey().storageKey(); got != "activeShift_system" {
		t.Errorf("system key = %q", got)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := newTestCache(t)

	shift := &models.Shift{
		ID:          "sh-1",
		Status:      models.ShiftStatusOpen,
		OpeningCash: 100000,
		EmployeeIDs: []string{"emp-a", "emp-b"},
	}
	if err := c.Put(IdentityKey("emp-a"), shift); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(IdentityKey("emp-a"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != "sh-1" || got.OpeningCash != 100000 || len(got.EmployeeIDs) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestPutOverwritesExisting(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put(SystemKey(), &models.Shift{ID: "sh-1"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(SystemKey(), &models.Shift{ID: "sh-2"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := c.Get(SystemKey())
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "sh-2" {
		t.Errorf("expected sh-2 after overwrite, got %s", got.ID)
	}
}

func TestGetMissingIsNotAnError(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(IdentityKey("nobody"))
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing key, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put(IdentityKey("emp-a"), &models.Shift{ID: "sh-1"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(IdentityKey("emp-a")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := c.Get(IdentityKey("emp-a"))
	if err != nil || got != nil {
		t.Errorf("expected cleared entry, got %+v err %v", got, err)
	}

	// Deleting an absent key is a no-op.
	if err := c.Delete(IdentityKey("emp-a")); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}
