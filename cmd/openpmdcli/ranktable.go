package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/openPMD/openpmd-go/groupcomm"
)

// runRankTable exercises groupcomm from rank 0's side: with one rank it
// gathers through groupcomm.Solo; with more it builds an HTTPRing over
// http://127.0.0.1:9000+i, which only answers if every other rank's Handler
// is already listening there. The gathered rank -> hostname table is printed;
// nothing is persisted.
func runRankTable(ctx context.Context, args []string) error {
	fs := newFlagSet("rank-table")
	ranks := fs.Int("ranks", 1, "number of simulated ranks")
	method := fs.String("method", "posix", "hostname method: posix or http")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: openpmdcli rank-table <path> --ranks N --method {posix,http}")
	}

	var m groupcomm.Method
	switch *method {
	case "posix":
		m = groupcomm.MethodPOSIXHostname
	case "http":
		m = groupcomm.MethodMPIProcessorName
	default:
		return fmt.Errorf("unknown method %q (want posix or http)", *method)
	}

	var comm groupcomm.Communicator
	if *ranks <= 1 {
		comm = groupcomm.Solo{}
	} else {
		endpoints := make([]string, *ranks)
		for i := range endpoints {
			endpoints[i] = fmt.Sprintf("http://127.0.0.1:%d", 9000+i)
		}
		comm = groupcomm.NewHTTPRing(0, endpoints)
	}

	table, err := comm.AllGatherHostnames(ctx, m)
	if err != nil {
		return err
	}
	var order []uint32
	for r := range table {
		order = append(order, r)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, r := range order {
		fmt.Printf("rank %d -> %s\n", r, table[r])
	}
	return nil
}
