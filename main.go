// main is the entry point of the testkit CLI.
package main

import (
	"github.com/dreamscape/testkit/cmd"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/internal/iocache"
)

func main() {
	defer iocache.CloseHistory()

	cmd.SetHistoryManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
