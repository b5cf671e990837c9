// +build integration

package main

import (
	"os"
	"strings"
	"testing"

	"boscoin.io/congress/cmd/congress/cmd"
)

// Run the program as a test
// This needs to be compiled with `go test` with special flags to do the
// trick. It filters out test arguments for the main, then launches the
// main. This allows us to gather coverage reports from integration tests.
func TestIntegration(t *testing.T) {
	var filteredArgs []string
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") ||
			strings.HasPrefix(arg, "-httptest.") {
			continue
		}
		filteredArgs = append(filteredArgs, arg)
	}
	cmd.SetArgs(filteredArgs)
	main()
}
