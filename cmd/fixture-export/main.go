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
	dbPath := flag.String("db", "", "path to the trace database")
	session := flag.String("session", "", "session ID to export (default: most recent)")
	last := flag.Int("last", 0, "export only the N most recent decisions (0 = all)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/trace.db --out path/to/fixture.json [--session id] [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *session, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, sessionID string, last int, outPath string) error {
	store, err := trace.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	if sessionID == "" {
		sessions, err := store.ListSessions(1)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions in %s", dbPath)
		}
		sessionID = sessions[0].ID
	}

	f, err := replay.FromSession(store, sessionID, last)
	if err != nil {
		return err
	}
	if err := replay.WriteFixture(outPath, f); err != nil {
		return err
	}
	fmt.Printf("Exported %d frames from session %s to %s\n", len(f.Frames), sessionID, outPath)
	return nil
}

// #endregion export
