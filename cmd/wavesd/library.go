package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesd/internal/config"
	"github.com/llehouerou/wavesd/internal/errmsg"
	"github.com/llehouerou/wavesd/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the song catalog wavesd schedules from",
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <path> <title> <artist> <album> <track-number> <duration-seconds>",
	Short: "Insert a song into the catalog",
	Args:  cobra.ExactArgs(6),
	RunE:  runLibraryAdd,
}

func init() {
	libraryCmd.AddCommand(libraryAddCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryAdd(_ *cobra.Command, args []string) error {
	trackNumber, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("invalid track number %q: %w", args[4], err)
	}
	durationSeconds, err := strconv.Atoi(args[5])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[5], err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	lib, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpLibraryLoad, err))
	}
	defer lib.Close()

	path, title, artist, album := args[0], args[1], args[2], args[3]
	handle, err := lib.Insert(path, title, artist, album, trackNumber, time.Duration(durationSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpLibraryInsert, path, err))
	}

	fmt.Printf("added song %d: %s\n", handle.LibraryID, handle.Path)
	return nil
}
