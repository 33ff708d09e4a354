//go:build !linux

package probe

// NewMPRIS returns a never-running player on platforms without D-Bus.
func NewMPRIS() (Player, error) {
	return &stubPlayer{name: "mpris"}, nil
}
