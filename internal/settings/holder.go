package settings

import "sync"

// Holder owns the process's single Registry. The first Get builds it; later
// calls return the same registry and only redirect its path.
type Holder struct {
	mu   sync.Mutex
	reg  *Registry
	opts []Option
}

// NewHolder returns a Holder that builds its registry with opts.
func NewHolder(opts ...Option) *Holder {
	return &Holder{opts: opts}
}

// Get returns the registry, building it on first use. A non-empty path
// becomes the target of the next Save or Load; loaded state is kept.
func (h *Holder) Get(path string) *Registry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.reg == nil {
		opts := h.opts
		if path != "" {
			opts = append(append([]Option(nil), opts...), WithPath(path))
		}
		h.reg = New(opts...)
		return h.reg
	}
	if path != "" {
		h.reg.SetPath(path)
	}
	return h.reg
}

// Built reports whether Get has constructed the registry.
func (h *Holder) Built() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reg != nil
}

// Reset drops the registry so the next Get builds a fresh one. Options
// passed here replace the construction options when given.
func (h *Holder) Reset(opts ...Option) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reg = nil
	if len(opts) > 0 {
		h.opts = opts
	}
}
