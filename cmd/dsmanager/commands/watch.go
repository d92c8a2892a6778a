package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/logging"
	"github.com/valderan/docker-simple-manager/internal/settings"
	"github.com/valderan/docker-simple-manager/internal/watcher"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print settings changes as the document is edited",
	Long: `Watch the settings document and print every setting that changes, one
line per key, until interrupted.

Edits are reloaded through the same validation as any other load; an edit
that breaks a rule is reported and the previous values stay in effect.
Bursts of writes are coalesced (watch_debounce, 200ms by default).`,
	Example: `  dsmanager watch
  dsmanager watch -v --log-format json

  See Also: dsmanager validate`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notef(cmd, "Watching %s (Ctrl+C to stop)\n", reg.Path())
	return watchSettings(ctx, reg, cmd.OutOrStdout(), cliConfig.WatchDebounce, logging.FromContext(ctx))
}

// watchSettings reloads reg whenever its document settles after a change
// and prints each changed key to out. It returns when ctx is done.
func watchSettings(ctx context.Context, reg *settings.Registry, out io.Writer, debounce time.Duration, logger *slog.Logger) error {
	printer := settings.Listen(func(c settings.Change) error {
		_, err := fmt.Fprintf(out, "%s: %s -> %s\n", c.Setting(), formatValue(c.Old), formatValue(c.New))
		return err
	})
	reg.RegisterObserver(printer)
	defer reg.UnregisterObserver(printer)

	w, err := watcher.New(watcher.Config{
		Path:     reg.Path(),
		Debounce: debounce,
		Logger:   logger,
	})
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return errors.NewSystemError(err, "Check that the settings directory exists")
	}
	defer func() { _ = w.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if _, err := reg.Reload(""); err != nil {
				logger.Error("settings reload rejected, keeping previous values", "path", reg.Path(), "error", err)
			}
		}
	}
}
