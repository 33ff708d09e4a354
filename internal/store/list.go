package store

// List returns songs, newest first by default or artist/title ascending
// with alpha. A limit of 0 or less means all. With dupesOnly, only songs
// whose (title, artist) pair appears on more than one row are returned;
// the duplicate key excludes album on purpose, so the same track on two
// albums counts as a duplicate pair.
func (s *Store) List(limit int, alpha, dupesOnly bool) ([]Song, error) {
	query := `
		SELECT id, title, artist, album, source, added_at
		FROM songs
	`
	if dupesOnly {
		query += `
		WHERE EXISTS (
			SELECT 1 FROM songs other
			WHERE other.title = songs.title
			  AND other.artist = songs.artist
			  AND other.id <> songs.id
		)
		`
	}
	if alpha {
		query += ` ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE`
	} else {
		query += ` ORDER BY id DESC`
	}

	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Source, &song.AddedAt); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}
