package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openPMD/openpmd-go/nlog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	ctx := context.Background()

	var err error
	switch cmd {
	case "ls":
		err = runLs(ctx, args)
	case "inspect":
		err = runInspect(ctx, args)
	case "convert":
		err = runConvert(ctx, args)
	case "rank-table":
		err = runRankTable(ctx, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		nlog.Errorf("%s: %v", cmd, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `openpmdcli <command> [flags]

commands:
  ls <path>                                   list iterations/meshes/species
  inspect <path> --iteration N                 print one iteration's attributes as JSON
  convert <src> <dst>                          copy structure+data between backends
  rank-table <path> --ranks N --method M       exercise groupcomm end to end (M: posix, http)`)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs
}
