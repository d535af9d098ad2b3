package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	xterm "golang.org/x/term"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/internal/presentation/term"
	"github.com/mfeilner/unimach/pkg/domain"
)

// debounceWindow is how long the watcher waits for further writes before
// triggering a rerun. Editors tend to emit bursts of events per save.
const debounceWindow = 200 * time.Millisecond

// RunWatch executes the machine and reruns it whenever its file changes.
// It blocks until interrupted.
func RunWatch(opts RunOptions) error {
	if opts.FilePath == "" {
		return &domain.ConfigError{Reason: "watch mode needs a machine file"}
	}

	logger := createLogger(opts.Debug)
	renderer := term.NewRenderer(opts.NoColor)

	if xterm.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(term.Banner(unimach.Version))
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	changes, err := watchFile(sigCtx, opts.FilePath, logger)
	if err != nil {
		return err
	}

	logger.Info("starting watcher", "path", opts.FilePath)
	printSystemMessage("Watching '%s'.", opts.FilePath)

	for {
		if err := runOnce(sigCtx, opts, logger, renderer); err != nil {
			if isInterrupted(err) {
				break
			}
			// Broken files are part of editing. Report and keep watching.
			printSystemMessage("Machine error: %v", err)
		}

		printSystemMessage("Waiting for changes... (ctrl-c to stop)")
		select {
		case <-sigCtx.Done():
			fmt.Println()
			printSystemMessage("Interrupted.")
			return nil
		case name := <-changes:
			printSystemMessage("Change detected in '%s'.", name)
		}
	}

	fmt.Println()
	printSystemMessage("Interrupted.")
	return nil
}

// watchFile emits one debounced event per burst of writes to path. The
// watch is placed on the directory because editors replace files on save,
// which drops a watch held on the old inode.
func watchFile(ctx context.Context, path string, logger *slog.Logger) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	changes := make(chan string, 1)
	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time
		pending := ""

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("file event", "op", event.Op.String(), "name", event.Name)
				pending = event.Name
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					timerC = timer.C
				} else {
					timer.Reset(debounceWindow)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
			case <-timerC:
				timer = nil
				timerC = nil
				if pending == "" {
					continue
				}
				select {
				case changes <- pending:
				default:
				}
				pending = ""
			}
		}
	}()

	return changes, nil
}
