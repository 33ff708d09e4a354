package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"tunelog/internal/config"
	"tunelog/internal/errmsg"
	"tunelog/internal/probe"
	"tunelog/internal/store"
	"tunelog/internal/tags"
)

func opErr(op errmsg.Op, err error) error {
	return errors.New(errmsg.Format(op, err))
}

func opErrWith(op errmsg.Op, context string, err error) error {
	return errors.New(errmsg.FormatWith(op, context, err))
}

// actionRecord is the default action: probe the active player and record
// whatever it is playing, with an optional rating.
func actionRecord(cfg *config.Config, rate *int) error {
	ctx := context.Background()
	info := buildProbe(cfg).PlayingInfo(ctx)
	if info.Artist == "" && info.Track == "" {
		fmt.Println("nothing is playing")
		return nil
	}

	s, err := store.OpenExisting(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	id, err := s.AddTrack(info.Artist, info.Track, info.Album, info.Station, rate)
	if err != nil {
		if store.IsMissingSchema(err) {
			fmt.Println("no database schema found, run tunelog --reset to create it")
			return nil
		}
		return opErr(errmsg.OpTrackAdd, err)
	}
	log.Debug().Int64("id", id).Str("artist", info.Artist).Str("track", info.Track).Msg("recorded track")

	line := fmt.Sprintf("recorded #%d: %s - %s", id, info.Artist, info.Track)
	if info.Station != "" {
		line += " (" + info.Station + ")"
	}
	if current, err := s.Rating(id, false); err == nil && current > 0 {
		line += fmt.Sprintf("  %.1f/5", current)
	}
	fmt.Println(line)
	return nil
}

// actionAdd adds a song by hand, either from flags or from a file's tags.
func actionAdd(cfg *config.Config) error {
	title, artist, album := *addTitle, *addArtist, *addAlbum
	if *addFile != "" {
		t, err := tags.Read(*addFile)
		if err != nil {
			return opErrWith(errmsg.OpFileTags, *addFile, err)
		}
		title, artist, album = t.Title, t.Artist, t.Album
	}
	if title == "" || artist == "" {
		return errors.New("adding a song requires a title and an artist")
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	rate := cfg.DefaultRating
	id, err := s.AddTrack(artist, title, album, store.SourceManual, &rate)
	if err != nil {
		return opErr(errmsg.OpTrackAdd, err)
	}
	fmt.Printf("added #%d: %s - %s\n", id, artist, title)
	return nil
}

// actionPlay looks a song up and asks the probe to start it.
func actionPlay(cfg *config.Config, id int64) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	song, err := s.SongByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		fmt.Printf("no song with id %d\n", id)
		return nil
	}
	if err != nil {
		return opErr(errmsg.OpTrackList, err)
	}

	if err := buildProbe(cfg).Play(context.Background(), song.Title, song.Artist); err != nil {
		return opErrWith(errmsg.OpProbePlay, song.Title, err)
	}
	fmt.Printf("playing #%d: %s - %s\n", song.ID, song.Artist, song.Title)
	return nil
}

// actionDelete clears a song's ratings, then removes the song row. The
// store does not cascade, so the order matters.
func actionDelete(cfg *config.Config, id int64) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	if err := s.ClearRatings(id); err != nil {
		return opErr(errmsg.OpRatingClear, err)
	}
	if err := s.RemoveSong(id); err != nil {
		return opErr(errmsg.OpTrackDelete, err)
	}
	fmt.Printf("deleted song %d\n", id)
	return nil
}

func actionClearRatings(cfg *config.Config, id int64) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	if err := s.ClearRatings(id); err != nil {
		return opErr(errmsg.OpRatingClear, err)
	}
	fmt.Printf("cleared ratings for song %d\n", id)
	return nil
}

func actionList(cfg *config.Config, limit int, alpha, dupesOnly bool) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	songs, err := s.List(limit, alpha, dupesOnly)
	if err != nil {
		return opErr(errmsg.OpTrackList, err)
	}
	if len(songs) == 0 {
		fmt.Println("no songs yet")
		return nil
	}

	for _, song := range songs {
		rating, err := s.Rating(song.ID, *showAvg)
		if err != nil {
			return opErr(errmsg.OpRatingFetch, err)
		}
		line := fmt.Sprintf("%4d  %s - %s", song.ID, song.Artist, song.Title)
		if song.Album != "" {
			line += " [" + song.Album + "]"
		}
		if song.Source != "" {
			line += " (" + song.Source + ")"
		}
		if rating > 0 {
			line += fmt.Sprintf("  %.1f/5", rating)
		}
		line += "  added " + humanize.Time(time.Unix(song.AddedAt, 0))
		fmt.Println(line)
	}
	return nil
}

// actionReset wipes everything and recreates the schema. Missing tables
// are tolerated here so a reset works on a fresh database.
func actionReset(cfg *config.Config) error {
	s, err := store.OpenExisting(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	if err := s.Reset(); err != nil {
		return opErr(errmsg.OpStoreReset, err)
	}
	fmt.Println("database reset")
	return nil
}

func actionWipeRatings(cfg *config.Config) error {
	s, err := store.OpenExisting(cfg.DBPath)
	if err != nil {
		return opErr(errmsg.OpStoreOpen, err)
	}
	defer s.Close()

	if err := s.ClearAllRatings(); err != nil {
		return opErr(errmsg.OpRatingClear, err)
	}
	fmt.Println("all ratings cleared")
	return nil
}

// buildProbe assembles the configured player bridges in priority order.
func buildProbe(cfg *config.Config) *probe.Probe {
	var players []probe.Player
	for _, name := range cfg.Players {
		switch name {
		case "mpris":
			player, err := probe.NewMPRIS()
			if err != nil {
				log.Warn().Err(err).Msg("mpris bridge unavailable")
				continue
			}
			players = append(players, player)
		case "mpd":
			players = append(players, probe.NewMPD(cfg.MPD.Address))
		case "script":
			if !cfg.HasScriptBridge() {
				log.Warn().Msg("script bridge listed in players but not configured")
				continue
			}
			players = append(players, probe.NewScript(
				cfg.Script.Command, cfg.Script.Args, cfg.Script.App, cfg.Script.Scripts))
		default:
			log.Warn().Str("player", name).Msg("unknown player bridge")
		}
	}

	aliases := make([]probe.StationAlias, 0, len(cfg.Stations))
	for _, a := range cfg.Stations {
		aliases = append(aliases, probe.StationAlias{Prefix: a.Prefix, Display: a.Display})
	}

	p := probe.New(players, aliases)
	log.Debug().Strs("players", p.PlayerNames()).Msg("probe assembled")
	return p
}
