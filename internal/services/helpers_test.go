package services_test

import (
	"testing"
	"time"

	"beulahpos/internal/domain"
	"beulahpos/internal/services"
	"beulahpos/internal/station"
	"beulahpos/internal/store"
)

func memStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenKV(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })
	return store.New(kv, store.NewBus())
}

// testStation opens a full-ownership station over a fresh store.
func testStation(t *testing.T) *station.Station {
	t.Helper()
	s := station.Open(memStore(t), station.Config{
		Name:     "test",
		Owns:     domain.AllFields,
		Interval: time.Hour,
	})
	t.Cleanup(s.Close)
	return s
}

// seededStation also runs the first-boot seeding.
func seededStation(t *testing.T) *station.Station {
	t.Helper()
	s := testStation(t)
	if err := services.Initialize(s); err != nil {
		t.Fatal(err)
	}
	return s
}
