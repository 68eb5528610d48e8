package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/routegen/internal/log"
	"github.com/Alia5/routegen/internal/store"
	"github.com/Alia5/routegen/internal/watch"
)

type Watch struct {
	Generate `embed:""`
	Debounce time.Duration `help:"Quiet period before regenerating" default:"200ms" env:"ROUTEGEN_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, trace log.ArtifactLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Loop(ctx, logger, trace, nil)
}

// Loop runs a round, then another one after every batch of changes until ctx
// is done. Failed rounds are logged and watching continues. rounds, when
// set, receives the outcome of every round.
func (w *Watch) Loop(ctx context.Context, logger *slog.Logger, trace log.ArtifactLogger, rounds chan<- error) error {
	round := func() {
		_, err := w.Execute(ctx, logger, trace)
		if err != nil {
			logger.Error("Generation round failed", "error", err)
		}
		if rounds != nil {
			rounds <- err
		}
	}

	wt, err := watch.New(logger, w.Debounce, w.Output)
	if err != nil {
		return err
	}
	if err := wt.AddTree(w.Dir); err != nil {
		return err
	}
	wt.Start()
	defer wt.Stop()

	round()
	logger.Info("Watching for changes", "dir", w.Dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-wt.Batches:
			if !ok {
				return nil
			}
			logger.Info("Sources changed", "files", len(batch))
			w.logDependents(logger, batch)
			round()
		}
	}
}

func (w *Watch) logDependents(logger *slog.Logger, files []string) {
	if w.NoManifest || w.DryRun {
		return
	}
	st, err := store.Open(w.Output)
	if err != nil {
		logger.Debug("Manifest unavailable", "error", err)
		return
	}
	defer st.Close()
	deps, err := st.DependentsOf(files...)
	if err != nil {
		logger.Debug("Manifest query failed", "error", err)
		return
	}
	for _, d := range deps {
		logger.Debug("Affected artifact", "path", d)
	}
}
