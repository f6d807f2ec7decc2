package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesd/internal/config"
	"github.com/llehouerou/wavesd/internal/errmsg"
	"github.com/llehouerou/wavesd/internal/library"
	"github.com/llehouerou/wavesd/internal/mpris"
	"github.com/llehouerou/wavesd/internal/playback"
	"github.com/llehouerou/wavesd/internal/queue"
	"github.com/llehouerou/wavesd/internal/state"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the queue daemon until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	lib, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpLibraryLoad, err))
	}
	defer lib.Close()

	store, err := state.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}
	defer store.Close()

	snap, err := store.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}

	core := queue.NewCore(cfg.MaxLength, cfg.HashMult)
	if err := state.Rehydrate(core, snap); err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}

	svc := playback.New(core)
	defer svc.Close()

	adapter, err := mpris.New(svc)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpMPRISServe, err))
	}
	defer adapter.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	if err := store.Save(snapshotOf(svc)); err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateSave, err))
	}
	return nil
}

// snapshotOf reads svc's current contents and mode into a durable
// state.Snapshot, the inverse of state.Rehydrate.
func snapshotOf(svc playback.Service) state.Snapshot {
	items := svc.Items()
	snap := state.Snapshot{
		Items:  make([]state.SnapshotItem, len(items)),
		Random: svc.Shuffle(),
	}
	for i, item := range items {
		snap.Items[i] = state.SnapshotItem{
			LibraryID:   item.Song.LibraryID,
			Path:        item.Song.Path,
			Title:       item.Song.Title,
			Artist:      item.Song.Artist,
			Album:       item.Song.Album,
			TrackNumber: item.Song.TrackNumber,
			Priority:    item.Priority,
		}
	}

	switch svc.RepeatMode() {
	case playback.RepeatAll:
		snap.Repeat = true
	case playback.RepeatOne:
		snap.Repeat = true
		snap.Single = true
	case playback.RepeatConsume:
		snap.Repeat = true
		snap.Consume = true
	case playback.RepeatOff:
	}
	return snap
}
