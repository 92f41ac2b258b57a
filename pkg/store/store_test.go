package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/kit"
)

func record(id string, at time.Time) Record {
	return Record{
		Metadata: kit.Metadata{ID: id, CampaignName: "OrbitPay", Seeds: []string{"a-1"}, GeneratedAt: at},
		FileName: "OrbitPay-brand-kit.zip",
		Size:     42,
		Files:    []string{"brand.json"},
	}
}

// exercise runs the contract every Store must satisfy.
func exercise(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"b", "a", "c"} {
		if err := s.Save(ctx, record(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.CampaignName != "OrbitPay" || got.Size != 42 || len(got.Files) != 1 {
		t.Errorf("Get(a) = %+v", got)
	}

	_, err = s.Get(ctx, "missing")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) err = %v, want NOT_FOUND", err)
	}

	list, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "a" {
		t.Errorf("List(2) = %v", ids(list))
	}

	updated := record("a", base.Add(10*time.Hour))
	updated.Size = 7
	if err := s.Save(ctx, updated); err != nil {
		t.Fatal(err)
	}
	list, _ = s.List(ctx, 0)
	if len(list) != 3 || list[0].ID != "a" || list[0].Size != 7 {
		t.Errorf("List after update = %v", ids(list))
	}

	if err := s.Save(ctx, Record{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save without id err = %v", err)
	}
}

func ids(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exercise(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := record("x", time.Now())
	_ = s.Save(ctx, r)
	r.Files[0] = "changed"

	got, _ := s.Get(ctx, "x")
	if got.Files[0] != "brand.json" {
		t.Error("Save should copy slices")
	}
}

func TestNewRecord(t *testing.T) {
	k := &kit.Kit{
		Metadata: kit.Metadata{ID: "id", CampaignName: "Orbit Pay"},
		Files:    []kit.File{{Name: "brand.json"}, {Name: "preview.png"}},
		Archive:  make([]byte, 10),
	}
	r := NewRecord(k)
	if r.FileName != "Orbit-Pay-brand-kit.zip" || r.Size != 10 || len(r.Files) != 2 || r.ID != "id" {
		t.Errorf("NewRecord = %+v", r)
	}
}
