package probe

import (
	"context"
	"fmt"

	"github.com/fhs/gompd/v2/mpd"
)

// mpdPlayer probes an MPD server over its control protocol.
type mpdPlayer struct {
	address string
}

// NewMPD creates the MPD bridge for a tcp address like "localhost:6600".
func NewMPD(address string) Player {
	return &mpdPlayer{address: address}
}

func (m *mpdPlayer) Name() string { return "mpd" }

func (m *mpdPlayer) dial() (*mpd.Client, error) {
	return mpd.Dial("tcp", m.address)
}

func (m *mpdPlayer) Running(_ context.Context) bool {
	c, err := m.dial()
	if err != nil {
		return false
	}
	c.Close()
	return true
}

func (m *mpdPlayer) Playing(_ context.Context) (bool, error) {
	c, err := m.dial()
	if err != nil {
		return false, nil
	}
	defer c.Close()

	status, err := c.Status()
	if err != nil {
		return false, err
	}
	return status["state"] == "play", nil
}

func (m *mpdPlayer) Get(_ context.Context, prop Prop) (string, error) {
	c, err := m.dial()
	if err != nil {
		return "", nil
	}
	defer c.Close()

	song, err := c.CurrentSong()
	if err != nil {
		return "", err
	}

	switch prop {
	case PropArtist:
		return song["Artist"], nil
	case PropTrack:
		return song["Title"], nil
	case PropAlbum:
		return song["Album"], nil
	case PropStation:
		// MPD reports a stream's station as the song Name.
		return song["Name"], nil
	}
	return "", nil
}

// PlayTrack searches the MPD database for the track and plays the first
// match.
func (m *mpdPlayer) PlayTrack(_ context.Context, title, artist string) error {
	c, err := m.dial()
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.Search("artist", artist, "title", title)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return fmt.Errorf("no match in mpd database for %q by %q", title, artist)
	}

	id, err := c.AddID(res[0]["file"], -1)
	if err != nil {
		return err
	}
	return c.PlayID(id)
}
