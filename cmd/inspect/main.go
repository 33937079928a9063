package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/console"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/trace"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the trace database")
	last := flag.Int("last", 20, "show N most recent sessions, or N most recent decisions with --session")
	session := flag.String("session", "", "show decisions of one session (ID or unique prefix)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/trace.db [--last N] [--session id] [--json]")
		os.Exit(2)
	}

	store, err := trace.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *session != "" {
		err = runDetailMode(store, *session, *last, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type sessionRow struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	Preset    string `json:"preset"`
	Decisions int    `json:"decisions"`
}

func runListMode(store *trace.Store, last int, jsonOut bool) error {
	sessions, err := store.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		// store returns newest first; print chronologically
		rows[len(sessions)-1-i] = sessionRow{
			SessionID: s.ID,
			StartedAt: s.StartedAt.Format("2006-01-02T15:04:05Z"),
			Preset:    s.Preset,
			Decisions: s.Decisions,
		}
	}
	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %-7s  %9s  %s\n", "Session", "Preset", "Decisions", "Started")
	fmt.Printf("%-10s+-%-7s+-%9s+-%s\n", "----------", "-------", "---------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %-7s  %9d  %s\n", shortID(r.SessionID), r.Preset, r.Decisions, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type decisionRow struct {
	Tick     uint64  `json:"tick"`
	OffsetMS float64 `json:"offset_ms"`
	Outcome  string  `json:"outcome"`
	Winner   string  `json:"winner"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Seconds  float64 `json:"seconds"`
	Sensors  string  `json:"sensors"`
	Edited   bool    `json:"hierarchy_changed"`
}

func runDetailMode(store *trace.Store, prefix string, last int, jsonOut bool) error {
	id, err := resolveSession(store, prefix)
	if err != nil {
		return err
	}
	sess, err := store.GetSession(id)
	if err != nil {
		return err
	}
	entries, err := store.ListDecisions(id, last)
	if err != nil {
		return err
	}

	rows := make([]decisionRow, len(entries))
	counts := make(map[string]int)
	for i, e := range entries {
		rows[i] = decisionRow{
			Tick:     e.Tick,
			OffsetMS: float64(e.At.Sub(sess.StartedAt).Microseconds()) / 1000,
			Outcome:  e.Outcome,
			Winner:   e.Label(),
			Left:     e.Left,
			Right:    e.Right,
			Seconds:  e.Duration.Seconds(),
			Sensors:  console.FormatSnapshot(e.Snapshot),
			Edited:   e.Hierarchy != nil,
		}
		counts[e.Label()]++
	}
	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("Session:   %s\n", sess.ID)
	fmt.Printf("Preset:    %s\n", sess.Preset)
	fmt.Printf("Started:   %s\n", sess.StartedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("Decisions: %d (showing %d)\n\n", sess.Decisions, len(rows))

	fmt.Printf("%8s  %10s  %-16s  %6s  %6s  %5s  %s\n", "Tick", "Offset", "Winner", "Left", "Right", "Secs", "Sensors")
	for _, r := range rows {
		mark := ""
		if r.Edited {
			mark = "  *"
		}
		fmt.Printf("%8d  %10.1f  %-16s  %+6.2f  %+6.2f  %5.2f  %s%s\n",
			r.Tick, r.OffsetMS, r.Winner, r.Left, r.Right, r.Seconds, r.Sensors, mark)
	}

	fmt.Printf("\nWinners:\n")
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %d\n", name, counts[name])
	}
	return nil
}

// resolveSession accepts a full session ID or a unique prefix of one.
func resolveSession(store *trace.Store, prefix string) (string, error) {
	sessions, err := store.ListSessions(0)
	if err != nil {
		return "", err
	}
	var match string
	for _, s := range sessions {
		if s.ID == prefix {
			return s.ID, nil
		}
		if len(s.ID) >= len(prefix) && s.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("session prefix %q is ambiguous", prefix)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("session %q: %w", prefix, trace.ErrSessionNotFound)
	}
	return match, nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
