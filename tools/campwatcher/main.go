//
// Campaign watcher is a simple utility for tests
//
// It subscribes to the voter stream, and waits for every given voter
// to have cast a ballot for the expected proposal.
// Once all the ballots are seen, it exits with a 0 status code.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"boscoin.io/congress/lib/client"
)

type Expectation struct {
	address string
	choice  uint64
}

// This program expects an uneven number of arguments (>3):
// - the server address (without trailing slash)
// - a pair of voter address + proposal index
func main() {
	if len(os.Args) < 4 {
		fmt.Println("ERROR: At least three arguments expected")
		os.Exit(1)
	}

	server := os.Args[1]
	args := os.Args[2:]
	if (len(args) % 2) != 0 {
		fmt.Println("ERROR: Arguments should be <server> <address choice>+")
		os.Exit(1)
	}

	var exps []Expectation
	for i := 0; i < len(args); i += 2 {
		choice, err := strconv.ParseUint(args[i+1], 10, 64)
		if err != nil {
			fmt.Println("ERROR: ", err)
			os.Exit(1)
		}
		exps = append(exps, Expectation{address: args[i], choice: choice})
	}

	cli := client.NewClient(server)
	ctx, cancel := context.WithCancel(context.Background())

	handler := func(v client.Voter) {
		// We log the changes so if something fails, we have a history of what the client saw
		tnow := time.Now()
		fmt.Printf("%02d-%d-%d:%s:voted=%v:%d\n", tnow.Hour(), tnow.Minute(), tnow.Second(),
			v.Address, v.Voted, v.Choice)

		if !v.Voted {
			return
		}

		activeWatcher := false
		for idx, exp := range exps {
			// This is a voter we care about
			if exp.address == v.Address {
				if exp.choice != v.Choice {
					// Not the expected ballot yet, bail out
					return
				}
				exps[idx].address = ""
				// If there's still an active watcher,
				// there is no point in iterating further
				if activeWatcher == true {
					return
				}
			} else if len(exp.address) != 0 {
				// Can only cancel if all the addresses are set to ""
				activeWatcher = true
			}
		}
		if activeWatcher == false {
			cancel()
		}
	}

	if err := cli.StreamVoters(ctx, handler); err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}
}
