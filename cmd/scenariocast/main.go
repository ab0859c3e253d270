// Command scenariocast generates test scenarios from declarative case
// fixtures.
//
// Usage:
//
//	scenariocast generate <config> [--db catalog.db] [--case glob]
//	scenariocast validate <config>
//	scenariocast catalog <db> [--run id | --latest | --scenario id]
//
// Exit codes:
//
//	0  Success
//	1  The fixtures are malformed or a scenario has no outcome
//	2  Command error (unreadable file, catalog unavailable, bad flags)
package main

import (
	"os"

	"github.com/roach88/scenariocast/internal/cli"
)

func main() {
	os.Exit(cli.GetExitCode(cli.NewRootCommand().Execute()))
}
