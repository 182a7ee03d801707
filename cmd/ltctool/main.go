// ABOUTME: Entry point for ltctool, the LTC frame and config utility
// ABOUTME: Delegates to the cobra commands package
// ltctool inspects LTC frames and manages the LTCSync config file.
//
// Usage:
//
//	ltctool frame decode 0000000000000008fcbf
//	ltctool frame encode 10:00:00:00 --standard 625_50 --date 2024-06-15 --tz +0100
//	ltctool align --rate 48000 --fps 29.97
//	ltctool config init
package main

import (
	"os"

	"github.com/ltcsync/ltcsync-go/cmd/ltctool/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
