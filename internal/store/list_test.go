package store

import "testing"

func seedSongs(t *testing.T, s *Store) {
	t.Helper()
	for _, song := range []struct {
		artist, title, album string
	}{
		{"Zebra", "Alpha Song", "First"},
		{"Aardvark", "Zulu Song", "Second"},
		{"Middle", "Same Song", "Album One"},
		{"Middle", "Same Song", "Album Two"},
	} {
		if _, err := s.AddTrack(song.artist, song.title, song.album, "", nil); err != nil {
			t.Fatalf("AddTrack(%q) failed: %v", song.title, err)
		}
	}
}

func TestListOrderAndLimit(t *testing.T) {
	s := setupTestStore(t)
	seedSongs(t, s)

	// Default order is newest first
	songs, err := s.List(0, false, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(songs) != 4 {
		t.Fatalf("expected 4 songs, got %d", len(songs))
	}
	if songs[0].Album != "Album Two" || songs[3].Artist != "Zebra" {
		t.Errorf("unexpected insertion order: first=%+v last=%+v", songs[0], songs[3])
	}

	// Alphabetical order by artist then title
	songs, err = s.List(0, true, false)
	if err != nil {
		t.Fatalf("List(alpha) failed: %v", err)
	}
	if songs[0].Artist != "Aardvark" || songs[len(songs)-1].Artist != "Zebra" {
		t.Errorf("unexpected alphabetical order: first=%s last=%s",
			songs[0].Artist, songs[len(songs)-1].Artist)
	}

	// Limit caps the result, non-positive means all
	songs, err = s.List(2, false, false)
	if err != nil {
		t.Fatalf("List(limit) failed: %v", err)
	}
	if len(songs) != 2 {
		t.Errorf("expected 2 songs with limit 2, got %d", len(songs))
	}
	songs, err = s.List(-1, false, false)
	if err != nil {
		t.Fatalf("List(-1) failed: %v", err)
	}
	if len(songs) != 4 {
		t.Errorf("expected all songs with limit -1, got %d", len(songs))
	}
}

func TestListDuplicatesOnly(t *testing.T) {
	s := setupTestStore(t)
	seedSongs(t, s)

	songs, err := s.List(0, false, true)
	if err != nil {
		t.Fatalf("List(dupes) failed: %v", err)
	}

	// The duplicate key is (title, artist): the two "Same Song" rows
	// differ only by album and both count; unique pairs are excluded.
	if len(songs) != 2 {
		t.Fatalf("expected 2 duplicate rows, got %d", len(songs))
	}
	for _, song := range songs {
		if song.Title != "Same Song" || song.Artist != "Middle" {
			t.Errorf("unexpected duplicate: %+v", song)
		}
	}
}

func TestListEmpty(t *testing.T) {
	s := setupTestStore(t)

	songs, err := s.List(10, false, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("expected no songs, got %d", len(songs))
	}
}
