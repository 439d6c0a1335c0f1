package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the manifest whenever an asset changes",
	Long: `Run 'pack' once, then watch the input directory tree and run it again
after files are created, modified, renamed or removed.

Every regeneration re-reads and re-encodes all assets. Bursts of events
are collapsed into one run (see --debounce / watch_debounce_ms).
A failed run is reported and the watcher keeps going.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before regenerating (default from config, 300ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	if cmd.Flags().Changed("debounce") && watchDebounce > 0 {
		debounce = watchDebounce
	}

	req := bundleRequest(appConfig)
	target, err := watchTarget(req)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, appConfig.InputDir); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Println(ui.FormatRocket("Watching " + appConfig.InputDir))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	rebuild := func() {
		resp, err := bundleService.Execute(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintln(os.Stderr, ui.FormatError(describeError(err)))
			return
		}
		if !flagQuiet {
			printPackResult(resp)
		}
	}

	rebuild()
	return watchLoop(ctx, watcher, target, debounce, rebuild)
}

// watchLoop runs rebuild after each quiet period following relevant events.
// Rebuilds run on this goroutine, so they never overlap.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, debounce time.Duration, rebuild func()) error {
	// fire stays nil until an event arms the debounce timer
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoreEvent(event.Name, target) {
				continue
			}

			// New subdirectories need their own watch
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						log.Printf("Watcher error: %v", err)
					}
				}
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(debounce)
				fire = timer.C
			}

		case <-fire:
			timer, fire = nil, nil
			if !flagQuiet {
				fmt.Println(ui.FormatInfo("Changes detected, regenerating..."))
			}
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !flagQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// watchTarget returns the absolute output path so events for it can be ignored
func watchTarget(req services.BundleRequest) (string, error) {
	target, err := filepath.Abs(req.Target())
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path %s: %w", req.Target(), err)
	}
	return target, nil
}

// watchTree adds root and every directory below it to the watcher
func watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &domain.InputNotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &domain.InputNotFoundError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && domain.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignoreEvent filters out hidden files, the generated manifest and its temp
// files so a manifest written inside the input tree does not retrigger itself
func ignoreEvent(name, target string) bool {
	if domain.IsHidden(filepath.Base(name)) {
		return true
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if abs == target {
		return true
	}
	if filepath.Dir(abs) == filepath.Dir(target) {
		base := filepath.Base(abs)
		if strings.HasPrefix(base, "."+filepath.Base(target)+".") && strings.HasSuffix(base, ".tmp") {
			return true
		}
	}
	return false
}
