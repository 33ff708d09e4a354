//go:build linux

package probe

import (
	"context"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix      = "org.mpris.MediaPlayer2."
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
)

// mprisPlayer probes whatever MPRIS-capable player owns a name on the
// session bus.
type mprisPlayer struct {
	conn *dbus.Conn
}

// NewMPRIS creates the MPRIS bridge. Returns a never-running player if
// the session bus is unavailable.
func NewMPRIS() (Player, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		// No session bus, treat as no player running (intentional graceful degradation)
		return &stubPlayer{name: "mpris"}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}
	return &mprisPlayer{conn: conn}, nil
}

func (m *mprisPlayer) Name() string { return "mpris" }

// busName returns the first MPRIS bus name with an owner.
func (m *mprisPlayer) busName(ctx context.Context) (string, bool) {
	var names []string
	err := m.conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).
		Store(&names)
	if err != nil {
		return "", false
	}
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			return name, true
		}
	}
	return "", false
}

func (m *mprisPlayer) Running(ctx context.Context) bool {
	_, ok := m.busName(ctx)
	return ok
}

func (m *mprisPlayer) Playing(ctx context.Context) (bool, error) {
	name, ok := m.busName(ctx)
	if !ok {
		return false, nil
	}
	v, err := m.prop(ctx, name, "PlaybackStatus")
	if err != nil {
		return false, err
	}
	status, _ := v.Value().(string)
	return status == "Playing", nil
}

func (m *mprisPlayer) Get(ctx context.Context, prop Prop) (string, error) {
	name, ok := m.busName(ctx)
	if !ok {
		return "", nil
	}
	v, err := m.prop(ctx, name, "Metadata")
	if err != nil {
		return "", err
	}
	md, _ := v.Value().(map[string]dbus.Variant)

	switch prop {
	case PropArtist:
		if artists, ok := md["xesam:artist"].Value().([]string); ok && len(artists) > 0 {
			return artists[0], nil
		}
	case PropTrack:
		if title, ok := md["xesam:title"].Value().(string); ok {
			return title, nil
		}
	case PropAlbum:
		if album, ok := md["xesam:album"].Value().(string); ok {
			return album, nil
		}
	case PropStation:
		// MPRIS has no station field; streams surface the station in the
		// title, which the aggregator handles.
	}
	return "", nil
}

func (m *mprisPlayer) prop(ctx context.Context, dest, name string) (dbus.Variant, error) {
	var v dbus.Variant
	err := m.conn.Object(dest, mprisPath).
		CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, mprisPlayerIface, name).
		Store(&v)
	return v, err
}
