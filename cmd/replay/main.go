package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/replay"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/trace"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the trace database (DB mode)")
	session := flag.String("session", "", "session ID to replay in DB mode (default: most recent)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/trace.db [--session id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *session)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region modes

func runDBMode(dbPath, sessionID string) int {
	store, err := trace.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	if sessionID == "" {
		sessions, err := store.ListSessions(1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list sessions: %v\n", err)
			return 2
		}
		if len(sessions) == 0 {
			fmt.Fprintln(os.Stderr, "no sessions recorded")
			return 2
		}
		sessionID = sessions[0].ID
	}

	f, err := replay.FromSession(store, sessionID, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		return 2
	}
	return run(f)
}

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	return run(f)
}

func run(f *replay.Fixture) int {
	results, err := replay.Replay(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}
	return printComparison(results)
}

// #endregion modes

// #region output

// printComparison outputs a comparison table and returns the exit code.
func printComparison(results []replay.Result) int {
	fmt.Printf("%-6s| %-10s| %-16s| %-16s| %s\n", "Frame", "At (ms)", "Expected", "Replayed", "Match")
	fmt.Printf("%-6s+%-11s+%-17s+%-17s+%s\n",
		"------", "-----------", "-----------------", "-----------------", "------")

	for _, r := range results {
		match := "DIFF"
		if r.Match {
			match = "OK"
		}
		fmt.Printf("%-6d| %-10.1f| %-16s| %-16s| %s\n", r.Index, r.AtMS, orDash(r.Expected), orDash(r.Replayed), match)
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge (acted %d, stopped %d, waiting %d)\n",
		s.Frames, s.Matches, s.Diverged, s.Acted, s.Stopped, s.Waiting)

	if s.Diverged > 0 {
		return 1
	}
	return 0
}

func orDash(label string) string {
	if label == "" {
		return "(wait)"
	}
	return label
}

// #endregion output
