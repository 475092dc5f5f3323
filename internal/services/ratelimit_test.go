package services

import (
	"errors"
	"testing"
	"time"

	"youngchai/internal/models"
	"youngchai/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *store.CommentStore {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := conn.AutoMigrate(&models.Comment{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store.New(conn)
}

func insert(t *testing.T, s *store.CommentStore, ipHash string, age time.Duration) {
	t.Helper()
	c := &models.Comment{
		PostSlug:  "hello-world",
		Name:      "Ann",
		Content:   "hi",
		Approved:  true,
		IPHash:    ipHash,
		CreatedAt: time.Now().Add(-age),
	}
	if err := s.Create(c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	s := newTestStore(t)
	limiter := NewRateLimiter(s, 3, time.Minute)

	insert(t, s, "cafe0001", 10*time.Second)
	insert(t, s, "cafe0001", 20*time.Second)

	if err := limiter.Allow("cafe0001"); err != nil {
		t.Errorf("Two recent comments should still be allowed, got %v", err)
	}
}

func TestRateLimiterRejectsAtLimit(t *testing.T) {
	s := newTestStore(t)
	limiter := NewRateLimiter(s, 3, time.Minute)

	for i := 0; i < 3; i++ {
		insert(t, s, "cafe0001", time.Duration(i+1)*time.Second)
	}

	if err := limiter.Allow("cafe0001"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited after 3 comments in the window, got %v", err)
	}

	// A different source is unaffected.
	if err := limiter.Allow("beef0002"); err != nil {
		t.Errorf("Different ip_hash must not be throttled, got %v", err)
	}
}

func TestRateLimiterIgnoresOldComments(t *testing.T) {
	s := newTestStore(t)
	limiter := NewRateLimiter(s, 3, time.Minute)

	for i := 0; i < 3; i++ {
		insert(t, s, "cafe0001", 2*time.Minute)
	}

	if err := limiter.Allow("cafe0001"); err != nil {
		t.Errorf("Comments outside the window must not count, got %v", err)
	}
}
