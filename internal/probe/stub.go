package probe

import "context"

// stubPlayer stands in for an unavailable bridge; it never runs.
type stubPlayer struct {
	name string
}

func (s *stubPlayer) Name() string { return s.name }

func (s *stubPlayer) Running(_ context.Context) bool { return false }

func (s *stubPlayer) Playing(_ context.Context) (bool, error) { return false, nil }

func (s *stubPlayer) Get(_ context.Context, _ Prop) (string, error) { return "", nil }
