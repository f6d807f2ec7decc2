package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wavesd",
	Short: "Playback-queue scheduling daemon",
	Long:  `wavesd schedules a music player's play queue and exposes it over MPRIS.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
