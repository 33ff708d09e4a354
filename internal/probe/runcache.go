package probe

// runCache memoizes "is this application running" answers for a single
// process run, so repeated property lookups don't re-probe the player.
type runCache struct {
	known map[string]bool
}

func newRunCache() *runCache {
	return &runCache{known: make(map[string]bool)}
}

func (c *runCache) get(name string) (running, ok bool) {
	running, ok = c.known[name]
	return running, ok
}

func (c *runCache) set(name string, running bool) {
	c.known[name] = running
}
