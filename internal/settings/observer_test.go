package settings

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valderan/docker-simple-manager/internal/logging"
)

type recorder struct {
	name  string
	calls *[]string
	got   []Change
	fail  error
}

func (r *recorder) OnSettingChanged(c Change) error {
	*r.calls = append(*r.calls, r.name)
	r.got = append(r.got, c)
	return r.fail
}

func TestHub_RegisterIsASet(t *testing.T) {
	h := NewHub(nil)
	var calls []string
	o := &recorder{name: "a", calls: &calls}

	h.Register(o)
	h.Register(o)
	h.Register(nil)
	assert.Equal(t, 1, h.Len())

	h.Notify(Change{Group: "app", Key: "language"})
	assert.Equal(t, []string{"a"}, calls, "a duplicate registration must not cause a second call")
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub(nil)
	var calls []string
	a := &recorder{name: "a", calls: &calls}
	b := &recorder{name: "b", calls: &calls}

	h.Register(a)
	h.Register(b)
	h.Unregister(a)
	h.Unregister(a)
	h.Unregister(&recorder{name: "stranger", calls: &calls})

	h.Notify(Change{})
	assert.Equal(t, []string{"b"}, calls)
}

func TestHub_FailuresAreIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelError, Format: logging.FormatText, Output: &buf})
	h := NewHub(logger)

	var calls []string
	failing := &recorder{name: "failing", calls: &calls, fail: errors.New("listener broke")}
	panicking := Listen(func(Change) error {
		calls = append(calls, "panicking")
		panic("boom")
	})
	healthy := &recorder{name: "healthy", calls: &calls}

	h.Register(failing)
	h.Register(panicking)
	h.Register(healthy)

	assert.NotPanics(t, func() {
		h.Notify(Change{Group: "app", Key: "language", Old: "ru", New: "en"})
	})
	assert.Equal(t, []string{"failing", "panicking", "healthy"}, calls)
	assert.Contains(t, buf.String(), "listener broke")
	assert.Contains(t, buf.String(), "observer panicked: boom")
}

func TestListen_DistinctHandles(t *testing.T) {
	h := NewHub(nil)
	fn := func(Change) error { return nil }

	a := Listen(fn)
	b := Listen(fn)
	h.Register(a)
	h.Register(b)
	assert.Equal(t, 2, h.Len())

	h.Unregister(a)
	assert.Equal(t, 1, h.Len())
}

func TestHub_RegisterDuringNotify(t *testing.T) {
	h := NewHub(nil)
	var calls []string
	late := &recorder{name: "late", calls: &calls}
	h.Register(Listen(func(Change) error {
		calls = append(calls, "first")
		h.Register(late)
		return nil
	}))

	h.Notify(Change{})
	assert.Equal(t, []string{"first"}, calls, "observers added during delivery wait for the next change")

	h.Notify(Change{})
	assert.Equal(t, []string{"first", "first", "late"}, calls)
}

func TestRegistry_ObserverFanOut(t *testing.T) {
	r := newTestRegistry(t)
	var calls []string
	first := &recorder{name: "first", calls: &calls, fail: errors.New("first listener fails")}
	second := &recorder{name: "second", calls: &calls}
	r.RegisterObserver(first)
	r.RegisterObserver(second)

	require.NoError(t, r.SetValue("app", "language", "en"))

	want := Change{Group: "app", Key: "language", Old: "ru", New: "en"}
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, []Change{want}, first.got)
	assert.Equal(t, []Change{want}, second.got)
}

func TestRegistry_NoNotificationOnRejectedSet(t *testing.T) {
	r := newTestRegistry(t)
	var calls []string
	r.RegisterObserver(&recorder{name: "o", calls: &calls})

	require.Error(t, r.SetValue("app", "language", "es"))
	require.Error(t, r.SetValue("app", "missing", "x"))
	assert.Empty(t, calls)
	assert.False(t, r.Dirty())
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelInfo, Format: logging.FormatText, Output: &buf})

	o := NewLoggingObserver(logger)
	require.NoError(t, o.OnSettingChanged(Change{Group: "app", Key: "theme", Old: "system", New: "dark"}))

	out := buf.String()
	for _, want := range []string{"setting changed", "group=app", "key=theme", "old=system", "new=dark"} {
		assert.Contains(t, out, want)
	}
}
