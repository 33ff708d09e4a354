// Package probe determines what the local media players are playing.
// Players sit behind the Player interface so the probe logic stays
// independent of how each one is queried.
package probe

import (
	"context"
	"errors"
)

// Prop is a now-playing property a Player can report.
type Prop string

const (
	PropArtist  Prop = "artist"
	PropTrack   Prop = "track"
	PropAlbum   Prop = "album"
	PropStation Prop = "station"
)

// Player queries one media application.
type Player interface {
	Name() string
	Running(ctx context.Context) bool
	Playing(ctx context.Context) (bool, error)
	// Get returns a property of the current track, empty when absent.
	Get(ctx context.Context, prop Prop) (string, error)
}

// TrackStarter is implemented by players that can start playback of a
// specific track.
type TrackStarter interface {
	PlayTrack(ctx context.Context, title, artist string) error
}

// Info is the aggregated now-playing state. All fields are empty when
// nothing is playing.
type Info struct {
	Artist  string
	Track   string
	Album   string
	Station string
}

// Probe aggregates players in priority order.
type Probe struct {
	players []Player
	cache   *runCache
	aliases []StationAlias
}

// New creates a Probe. Players are consulted in the given order; the
// first non-empty answer wins.
func New(players []Player, aliases []StationAlias) *Probe {
	return &Probe{
		players: players,
		cache:   newRunCache(),
		aliases: aliases,
	}
}

// IsRunning reports whether the named player's application is active.
// The answer is memoized for the lifetime of the Probe.
func (p *Probe) IsRunning(ctx context.Context, name string) bool {
	if running, ok := p.cache.get(name); ok {
		return running
	}
	running := false
	if player := p.byName(name); player != nil {
		running = player.Running(ctx)
	}
	p.cache.set(name, running)
	return running
}

// IsPlaying reports whether the named player reports "playing"; with an
// empty name, whether any player does.
func (p *Probe) IsPlaying(ctx context.Context, name string) bool {
	for _, player := range p.players {
		if name != "" && player.Name() != name {
			continue
		}
		if !p.IsRunning(ctx, player.Name()) {
			continue
		}
		if playing, err := player.Playing(ctx); err == nil && playing {
			return true
		}
	}
	return false
}

func (p *Probe) Artist(ctx context.Context) string  { return p.first(ctx, PropArtist) }
func (p *Probe) Track(ctx context.Context) string   { return p.first(ctx, PropTrack) }
func (p *Probe) Album(ctx context.Context) string   { return p.first(ctx, PropAlbum) }
func (p *Probe) Station(ctx context.Context) string { return p.first(ctx, PropStation) }

// PlayingInfo aggregates the current playback state. When the artist is
// missing the track field is a radio-style stream title: it doubles as
// the station name and is split into artist/track when it contains the
// " - " separator.
func (p *Probe) PlayingInfo(ctx context.Context) Info {
	if !p.IsPlaying(ctx, "") {
		return Info{}
	}

	var info Info
	info.Artist = p.first(ctx, PropArtist)
	info.Track = p.first(ctx, PropTrack)

	if info.Artist == "" {
		info.Station = info.Track
		if artist, title, ok := SplitStreamTitle(info.Track); ok {
			info.Artist, info.Track = artist, title
		}
	} else {
		info.Album = p.first(ctx, PropAlbum)
		info.Station = p.first(ctx, PropStation)
	}

	info.Station = p.CanonicalStation(info.Station)
	return info
}

// Play starts playback of a track on the first running player that can.
func (p *Probe) Play(ctx context.Context, title, artist string) error {
	for _, player := range p.players {
		starter, ok := player.(TrackStarter)
		if !ok || !p.IsRunning(ctx, player.Name()) {
			continue
		}
		return starter.PlayTrack(ctx, title, artist)
	}
	return errors.New("no running player can start playback")
}

// PlayerNames returns the configured bridge names in priority order.
func (p *Probe) PlayerNames() []string {
	names := make([]string, 0, len(p.players))
	for _, player := range p.players {
		names = append(names, player.Name())
	}
	return names
}

// first returns the first non-empty property value among playing
// players, in priority order. Player errors degrade to empty.
func (p *Probe) first(ctx context.Context, prop Prop) string {
	for _, player := range p.players {
		if !p.IsRunning(ctx, player.Name()) {
			continue
		}
		if playing, err := player.Playing(ctx); err != nil || !playing {
			continue
		}
		if v, err := player.Get(ctx, prop); err == nil && v != "" {
			return v
		}
	}
	return ""
}

func (p *Probe) byName(name string) Player {
	for _, player := range p.players {
		if player.Name() == name {
			return player
		}
	}
	return nil
}
