package probe

import "strings"

// streamSeparator splits a radio stream title into artist and track.
const streamSeparator = " - "

// StationAlias canonicalizes station names starting with Prefix
// (case-insensitive) to Display.
type StationAlias struct {
	Prefix  string
	Display string
}

// SplitStreamTitle splits a combined "artist - title" stream string.
// ok is false when the separator is absent.
func SplitStreamTitle(s string) (artist, title string, ok bool) {
	parts := strings.SplitN(s, streamSeparator, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// CanonicalStation rewrites station names matching a configured alias
// prefix to that alias's display name. Non-matching names pass through.
func (p *Probe) CanonicalStation(station string) string {
	lower := strings.ToLower(station)
	for _, alias := range p.aliases {
		if alias.Prefix == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(alias.Prefix)) {
			return alias.Display
		}
	}
	return station
}
