package store

import (
	"database/sql"
	"time"

	dbutil "tunelog/internal/db"
)

// SourceManual is the source label for songs added by hand.
const SourceManual = "manually added"

// AddTrack inserts a song unless the (title, artist, album) triple
// already exists, and resolves the song's id either way. A non-nil
// rating appends a rating event for the song. The statement group runs
// in one transaction.
func (s *Store) AddTrack(artist, track, album, source string, rating *int) (int64, error) {
	var id int64
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		_, err := tx.Exec(`
			INSERT INTO songs (title, artist, album, source, added_at)
			VALUES (?, ?, ?, ?, ?)
		`, track, artist, album, source, now)
		if err != nil && !dbutil.IsUniqueViolation(err) {
			return err
		}

		err = tx.QueryRow(`
			SELECT id FROM songs WHERE title = ? AND artist = ? AND album = ?
		`, track, artist, album).Scan(&id)
		if err != nil {
			return err
		}

		if rating != nil {
			_, err = tx.Exec(`
				INSERT INTO ratings (song_id, rating, rated_at)
				VALUES (?, ?, ?)
			`, id, ClampRating(*rating), now)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SongByID returns a song by its id. Returns sql.ErrNoRows when absent.
func (s *Store) SongByID(id int64) (*Song, error) {
	var song Song
	err := s.db.QueryRow(`
		SELECT id, title, artist, album, source, added_at
		FROM songs
		WHERE id = ?
	`, id).Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Source, &song.AddedAt)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// RemoveSong deletes a song row. The song's ratings are not cascaded;
// clear them first.
func (s *Store) RemoveSong(id int64) error {
	_, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	return err
}

// SongCount returns the total number of songs.
func (s *Store) SongCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count)
	return count, err
}
