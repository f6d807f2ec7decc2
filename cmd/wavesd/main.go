// Command wavesd runs the playback-queue scheduling daemon.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
