package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkashAS-coder/Clarity-Care/translator"
)

var watchFlags struct {
	audience  string
	tone      string
	highlight bool
	ai        bool
	out       string
	format    string
}

// watchCmd re-translates a note file each time it is saved, debounced the
// same way the editor debounces keystrokes.
var watchCmd = &cobra.Command{
	Use:   "watch <note-file>",
	Short: "Re-translate a note file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchFlags.audience, "audience", "", "adult, teen, caregiver or esl")
	f.StringVar(&watchFlags.tone, "tone", "", "warm, direct or coach")
	f.BoolVar(&watchFlags.highlight, "highlight", false, "mark plain-language terms in the HTML output (default from config)")
	f.BoolVar(&watchFlags.ai, "ai", false, "use the remote AI endpoint")
	f.StringVarP(&watchFlags.out, "out", "o", "", "rewrite this export after each translation")
	f.StringVar(&watchFlags.format, "format", "txt", "export format: txt, md or html")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	orch, err := newCLIOrchestrator(watchFlags.ai, "")
	if err != nil {
		return err
	}
	opts := cliOptions(cmd, watchFlags.audience, watchFlags.tone, watchFlags.highlight, watchFlags.ai)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read note", zap.String("path", path), zap.Error(err))
			return
		}
		out := orch.SubmitNote(ctx, string(data), opts)
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n", filepath.Base(path))
		if err := printOutcome(cmd.OutOrStdout(), out, false, watchFlags.out, watchFlags.format); err != nil {
			logger.Warn("export failed", zap.Error(err))
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	debounce := translator.NewDebouncer(translator.AutoTranslateDelay)
	defer debounce.Stop()

	run()
	logger.Info("watching note", zap.String("path", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("note changed", zap.String("op", ev.Op.String()))
			debounce.Trigger(run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				debounce.Trigger(run)
				continue
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
