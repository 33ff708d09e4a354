package store

import (
	"database/sql"
	"errors"
	"math"
	"time"

	dbutil "tunelog/internal/db"
)

// ClampRating bounds a rating to the valid 0..5 range.
func ClampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// AddRating appends a rating event for a song. Ratings are append-only;
// the latest event is the song's current rating.
func (s *Store) AddRating(songID int64, rating int) error {
	_, err := s.db.Exec(`
		INSERT INTO ratings (song_id, rating, rated_at)
		VALUES (?, ?, ?)
	`, songID, ClampRating(rating), time.Now().Unix())
	return err
}

// Rating returns a song's rating: the mean of all events when average
// is set, otherwise the most recently inserted event. Either way the
// value is rounded to the nearest half. No events yields 0.
func (s *Store) Rating(songID int64, average bool) (float64, error) {
	var v sql.NullFloat64
	var err error
	if average {
		err = s.db.QueryRow(`
			SELECT AVG(rating) FROM ratings WHERE song_id = ?
		`, songID).Scan(&v)
	} else {
		err = s.db.QueryRow(`
			SELECT rating FROM ratings WHERE song_id = ? ORDER BY id DESC LIMIT 1
		`, songID).Scan(&v)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return math.Round(2*dbutil.NullFloat64Value(v)) / 2, nil
}

// ClearRatings removes all rating events for one song.
func (s *Store) ClearRatings(songID int64) error {
	_, err := s.db.Exec(`DELETE FROM ratings WHERE song_id = ?`, songID)
	return err
}

// ClearAllRatings removes every rating event. A missing ratings table is
// answered by recreating the schema instead of failing.
func (s *Store) ClearAllRatings() error {
	_, err := s.db.Exec(`DELETE FROM ratings`)
	if err != nil && dbutil.IsMissingTable(err, "ratings") {
		return s.Create()
	}
	return err
}
