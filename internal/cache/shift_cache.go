package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"fuelpos-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Scope string

const (
	ScopeIdentity Scope = "identity"
	ScopeSystem   Scope = "system"
)

// Key identifies one cached active-shift slot. Typed instead of a bare
// string so a missing employee id cannot silently produce a bogus key.
type Key struct {
	Scope Scope
	ID    string // employee id, empty for ScopeSystem
}

func IdentityKey(employeeID string) Key {
	return Key{Scope: ScopeIdentity, ID: employeeID}
}

func SystemKey() Key {
	return Key{Scope: ScopeSystem}
}

func (k Key) storageKey() string {
	if k.Scope == ScopeSystem {
		return "activeShift_system"
	}
	return "activeShift_" + k.ID
}

// ShiftCache persists the last confirmed active shift per slot in the local
// sqlite database, so the station can still answer "is a shift open" when
// the head office is unreachable.
type ShiftCache struct {
	db *gorm.DB
}

func New(db *gorm.DB) *ShiftCache {
	return &ShiftCache{db: db}
}

func (c *ShiftCache) Get(key Key) (*models.Shift, error) {
	var rec models.CachedActiveShift
	err := c.db.First(&rec, "cache_key = ?", key.storageKey()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shift cache: %w", err)
	}

	var shift models.Shift
	if err := json.Unmarshal([]byte(rec.Payload), &shift); err != nil {
		return nil, fmt.Errorf("decode cached shift: %w", err)
	}
	return &shift, nil
}

func (c *ShiftCache) Put(key Key, shift *models.Shift) error {
	payload, err := json.Marshal(shift)
	if err != nil {
		return fmt.Errorf("encode shift for cache: %w", err)
	}

	rec := models.CachedActiveShift{
		CacheKey: key.storageKey(),
		Payload:  string(payload),
	}
	err = c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write shift cache: %w", err)
	}
	return nil
}

func (c *ShiftCache) Delete(key Key) error {
	err := c.db.Delete(&models.CachedActiveShift{}, "cache_key = ?", key.storageKey()).Error
	if err != nil {
		return fmt.Errorf("clear shift cache: %w", err)
	}
	return nil
}
