// Package main provides the entry point for etsytrack.
//
// etsytrack is a weekly task board for an Etsy shop. It runs as two halves:
//
//	etsytrack serve    # JSON API over SQLite
//	etsytrack          # terminal dashboard talking to that API
//
// See `etsytrack --help` for the scripted commands.
package main

import (
	"os"

	"github.com/zavlong/etsy-task-tracker/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
