package store

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestStore creates a store over an in-memory SQLite database with
// the schema in place.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	s := &Store{db: db}
	if err := s.Create(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddTrackIdempotent(t *testing.T) {
	s := setupTestStore(t)

	id1, err := s.AddTrack("Artist X", "Song A", "Album Y", "Radio", nil)
	if err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}
	id2, err := s.AddTrack("Artist X", "Song A", "Album Y", "Radio", nil)
	if err != nil {
		t.Fatalf("second AddTrack failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("duplicate add resolved to id %d, expected %d", id2, id1)
	}

	count, err := s.SongCount()
	if err != nil {
		t.Fatalf("SongCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 song row, got %d", count)
	}
}

func TestAddTrackScenario(t *testing.T) {
	s := setupTestStore(t)

	rate := 4
	id, err := s.AddTrack("Artist X", "Song A", "Album Y", "Radio", &rate)
	if err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	song, err := s.SongByID(id)
	if err != nil {
		t.Fatalf("SongByID failed: %v", err)
	}
	if song.Artist != "Artist X" || song.Title != "Song A" || song.Album != "Album Y" || song.Source != "Radio" {
		t.Errorf("unexpected song: %+v", song)
	}

	avg, err := s.Rating(id, true)
	if err != nil {
		t.Fatalf("Rating failed: %v", err)
	}
	if avg != 4.0 {
		t.Errorf("average rating = %v, expected 4.0", avg)
	}
}

func TestSongByIDMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.SongByID(42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRatingRounding(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddTrack("Artist", "Track", "Album", "", nil)
	if err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}
	for _, r := range []int{1, 2, 2} {
		if err := s.AddRating(id, r); err != nil {
			t.Fatalf("AddRating failed: %v", err)
		}
	}

	avg, err := s.Rating(id, true)
	if err != nil {
		t.Fatalf("Rating(avg) failed: %v", err)
	}
	// mean of 1,2,2 is 1.666..., rounded to the nearest half
	if avg != 1.5 {
		t.Errorf("average = %v, expected 1.5", avg)
	}

	latest, err := s.Rating(id, false)
	if err != nil {
		t.Fatalf("Rating(latest) failed: %v", err)
	}
	if latest != 2 {
		t.Errorf("latest = %v, expected 2", latest)
	}
}

func TestRatingNoEvents(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddTrack("Artist", "Track", "Album", "", nil)
	if err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	for _, average := range []bool{false, true} {
		v, err := s.Rating(id, average)
		if err != nil {
			t.Fatalf("Rating(average=%v) failed: %v", average, err)
		}
		if v != 0 {
			t.Errorf("Rating(average=%v) = %v, expected 0", average, v)
		}
	}
}

func TestRatingClamp(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddTrack("Artist", "Track", "Album", "", nil)
	if err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	tests := []struct {
		submitted int
		stored    int
	}{
		{-3, 0},
		{9, 5},
		{3, 3},
	}
	for _, tt := range tests {
		if err := s.AddRating(id, tt.submitted); err != nil {
			t.Fatalf("AddRating(%d) failed: %v", tt.submitted, err)
		}
		var stored int
		err := s.db.QueryRow(`SELECT rating FROM ratings WHERE song_id = ? ORDER BY id DESC LIMIT 1`, id).Scan(&stored)
		if err != nil {
			t.Fatalf("failed to read back rating: %v", err)
		}
		if stored != tt.stored {
			t.Errorf("rating %d stored as %d, expected %d", tt.submitted, stored, tt.stored)
		}
	}
}

func TestClearRatings(t *testing.T) {
	s := setupTestStore(t)

	rate := 3
	id1, _ := s.AddTrack("Artist", "Track One", "Album", "", &rate)
	id2, _ := s.AddTrack("Artist", "Track Two", "Album", "", &rate)

	if err := s.ClearRatings(id1); err != nil {
		t.Fatalf("ClearRatings failed: %v", err)
	}

	if v, _ := s.Rating(id1, false); v != 0 {
		t.Errorf("cleared song still rated %v", v)
	}
	if v, _ := s.Rating(id2, false); v != 3 {
		t.Errorf("other song's rating was lost, got %v", v)
	}
}

func TestClearAllRatings(t *testing.T) {
	s := setupTestStore(t)

	rate := 5
	id, _ := s.AddTrack("Artist", "Track", "Album", "", &rate)

	if err := s.ClearAllRatings(); err != nil {
		t.Fatalf("ClearAllRatings failed: %v", err)
	}
	if v, _ := s.Rating(id, false); v != 0 {
		t.Errorf("rating survived wipe: %v", v)
	}
}

func TestClearAllRatingsMissingTable(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.db.Exec(`DROP TABLE ratings`); err != nil {
		t.Fatalf("failed to drop ratings: %v", err)
	}

	// A missing ratings table is answered by recreating the schema.
	if err := s.ClearAllRatings(); err != nil {
		t.Fatalf("ClearAllRatings on missing table failed: %v", err)
	}
	id, err := s.AddTrack("Artist", "Track", "Album", "", nil)
	if err != nil {
		t.Fatalf("AddTrack after recovery failed: %v", err)
	}
	if err := s.AddRating(id, 3); err != nil {
		t.Fatalf("AddRating after recovery failed: %v", err)
	}
}

func TestRemoveSongDoesNotCascade(t *testing.T) {
	s := setupTestStore(t)

	rate := 4
	id, _ := s.AddTrack("Artist", "Track", "Album", "", &rate)

	if err := s.RemoveSong(id); err != nil {
		t.Fatalf("RemoveSong failed: %v", err)
	}

	// Rating events are not cascaded; callers clear them first.
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ratings WHERE song_id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("failed to count ratings: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 orphaned rating row, got %d", count)
	}
}

func TestResetThenList(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.AddTrack("Artist", "Track", "Album", "", nil); err != nil {
		t.Fatalf("AddTrack failed: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	songs, err := s.List(0, false, false)
	if err != nil {
		t.Fatalf("List after reset failed: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("expected empty listing after reset, got %d songs", len(songs))
	}

	// Reset also works when the tables are already gone.
	if err := s.Drop(false); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset on empty database failed: %v", err)
	}
}

func TestIsMissingSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()
	s := &Store{db: db}

	_, err = s.AddTrack("Artist", "Track", "Album", "", nil)
	if err == nil {
		t.Fatal("expected an error without a schema")
	}
	if !IsMissingSchema(err) {
		t.Errorf("IsMissingSchema(%v) = false, expected true", err)
	}

	if IsMissingSchema(errors.New("disk I/O error")) {
		t.Error("unrelated error recognized as missing schema")
	}
}
