package memory

import (
	"context"
	"testing"
	"time"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("Get() = %v, found=%v", err, found)
	}
	if string(got) != "v" {
		t.Fatalf("Get() = %q, want %q", got, "v")
	}
}

func TestGetMissing(t *testing.T) {
	s := New(0)
	_, found, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Fatalf("expected miss")
	}
}

func TestEntriesExpire(t *testing.T) {
	clock := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := NewWithClock(time.Hour, func() time.Time { return clock })
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	clock = clock.Add(59 * time.Minute)
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatalf("entry must survive within the ttl")
	}

	clock = clock.Add(2 * time.Minute)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("entry must expire past the ttl")
	}
}

func TestPutRefreshesExpiry(t *testing.T) {
	clock := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := NewWithClock(time.Hour, func() time.Time { return clock })
	ctx := context.Background()

	_ = s.Put(ctx, "k", []byte("1"))
	clock = clock.Add(50 * time.Minute)
	_ = s.Put(ctx, "k", []byte("2"))
	clock = clock.Add(50 * time.Minute)

	got, found, _ := s.Get(ctx, "k")
	if !found {
		t.Fatalf("put must restart the entry's clock")
	}
	if string(got) != "2" {
		t.Fatalf("Get() = %q, want %q", got, "2")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	_ = s.Put(ctx, "k", []byte("abc"))
	got, _, _ := s.Get(ctx, "k")
	got[0] = 'x'

	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through a returned slice")
	}
}
