package store

import dbutil "tunelog/internal/db"

// Create ensures the two-table schema exists. Ratings do not cascade on
// song deletion; callers clear a song's ratings before removing the row.
func (s *Store) Create() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			added_at INTEGER NOT NULL,
			UNIQUE(title, artist, album)
		);

		CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_id INTEGER NOT NULL REFERENCES songs(id),
			rating INTEGER NOT NULL,
			rated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_ratings_song ON ratings(song_id);
	`)
	return err
}

// Drop removes both tables. With ignoreMissing, "no such table" errors
// are tolerated so a full wipe works on an empty database.
func (s *Store) Drop(ignoreMissing bool) error {
	for _, table := range []string{"ratings", "songs"} {
		if _, err := s.db.Exec(`DROP TABLE ` + table); err != nil {
			if ignoreMissing && dbutil.IsMissingTable(err, table) {
				continue
			}
			return err
		}
	}
	return nil
}

// Reset drops and recreates the schema.
func (s *Store) Reset() error {
	if err := s.Drop(true); err != nil {
		return err
	}
	return s.Create()
}
