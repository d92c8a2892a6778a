package settings

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/valderan/docker-simple-manager/internal/logging"
)

// Change describes one key moving from Old to New.
type Change struct {
	Group string
	Key   string
	Old   any
	New   any
}

// Setting returns the dotted "group.key" name, or just Key for metadata.
func (c Change) Setting() string {
	if c.Group == "" {
		return c.Key
	}
	return c.Group + "." + c.Key
}

// Observer is notified after a value changes. A returned error is logged and
// does not stop delivery to other observers.
//
// Observers are compared with ==, so implementations should be pointers or
// other comparable values.
type Observer interface {
	OnSettingChanged(Change) error
}

type funcObserver struct {
	fn func(Change) error
}

func (o *funcObserver) OnSettingChanged(c Change) error { return o.fn(c) }

// Listen wraps fn as an Observer. Keep the result to unregister it later;
// every call returns a distinct observer.
func Listen(fn func(Change) error) Observer {
	return &funcObserver{fn: fn}
}

// Hub is an ordered set of observers. Notify runs on the caller's goroutine.
type Hub struct {
	mu        sync.Mutex
	observers []Observer
	logger    *slog.Logger
}

// NewHub creates a hub that reports observer failures to logger.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Hub{logger: logger}
}

// Register adds o. Registering an observer twice has no effect.
func (h *Hub) Register(o Observer) {
	if o == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.indexOf(o) >= 0 {
		return
	}
	h.observers = append(h.observers, o)
}

// Unregister removes o. Unknown observers are ignored.
func (h *Hub) Unregister(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := h.indexOf(o); i >= 0 {
		h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
	}
}

// Len returns the number of registered observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// Notify delivers c to every observer in registration order. Observers
// registered or removed during delivery take effect on the next change.
func (h *Hub) Notify(c Change) {
	h.mu.Lock()
	observers := append([]Observer(nil), h.observers...)
	h.mu.Unlock()

	for _, o := range observers {
		if err := deliver(o, c); err != nil {
			h.logger.Error("settings observer failed",
				"observer", fmt.Sprintf("%T", o),
				"setting", c.Setting(),
				"error", err)
		}
	}
}

func (h *Hub) indexOf(o Observer) int {
	for i, cur := range h.observers {
		if sameObserver(cur, o) {
			return i
		}
	}
	return -1
}

// sameObserver compares with == when both dynamic types allow it.
func sameObserver(a, b Observer) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func deliver(o Observer, c Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("observer panicked: %v", r)
		}
	}()
	return o.OnSettingChanged(c)
}

// LoggingObserver writes every change to a logger at info level.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver returns an observer logging to logger.
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &LoggingObserver{Logger: logger}
}

// OnSettingChanged implements Observer.
func (o *LoggingObserver) OnSettingChanged(c Change) error {
	o.Logger.Info("setting changed",
		"group", c.Group,
		"key", c.Key,
		"old", c.Old,
		"new", c.New)
	return nil
}
