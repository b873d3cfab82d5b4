// Command casetracker shows a one-shot terminal dashboard of cumulative
// COVID-19 statistics for a single location.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"syscall"

	"casetracker/casedata"
	"casetracker/config"
	"casetracker/download"
	"casetracker/ui"

	"github.com/dustin/go-humanize"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

var errNotInteractive = errors.New("stdout is not a terminal")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "casetracker: %v\n", err)
		os.Exit(1)
	}
}

// Purpose: Wire config, logging, the one fetch, and the dashboard.
// Key aspects: Everything that can fail before drawing happens before the
// terminal is touched.
// Upstream: main.
// Downstream: config.LoadDefault, setupLogging, fetchSnapshot, runDashboard.
func run() error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fanout, logErr := setupLogging(cfg.Logging, os.Stderr)
	log.SetFlags(0)
	log.SetOutput(fanout)
	defer fanout.Close()
	if logErr != nil {
		log.Printf("Logging: file output disabled: %v", logErr)
	}
	log.Printf("casetracker %s starting", Version)
	cfg.Print(log.Writer())

	if !ui.IsInteractive() {
		return errNotInteractive
	}

	snapshot, err := fetchSnapshot(context.Background(), cfg.Source)
	if err != nil {
		return err
	}
	return runDashboard(fanout, snapshot)
}

// Purpose: Fetch and decode the case document once.
// Key aspects: The snapshot carries where it came from for logging.
// Upstream: run.
// Downstream: download.Fetch, casedata.Decode.
func fetchSnapshot(ctx context.Context, src config.SourceConfig) (*casedata.Snapshot, error) {
	res, err := download.Fetch(ctx, download.Request{
		URL:       src.URL,
		Timeout:   src.Timeout(),
		UserAgent: src.UserAgent,
		MaxBytes:  src.MaxBodyBytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.URL, err)
	}
	decoded, err := casedata.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.URL, err)
	}
	snapshot := decoded.WithSource(casedata.Source{
		URL:       src.URL,
		FetchedAt: res.FetchedAt,
		Bytes:     res.Bytes,
		Digest:    res.Digest,
	})

	log.Printf("Fetched %s (%s, xxh3 %016x)", src.URL, humanize.Bytes(uint64(res.Bytes)), res.Digest)
	latest := snapshot.Latest
	updated := "unknown"
	if !snapshot.LastUpdated.IsZero() {
		updated = humanize.Time(snapshot.LastUpdated)
	}
	log.Printf("%s: %s confirmed, %s active, %s recovered, %s deaths (updated %s, %d timeline points)",
		snapshot.Location.Country,
		comma(latest.Confirmed), comma(latest.Active()), comma(latest.Recovered), comma(latest.Deaths),
		updated, snapshot.Timelines.Confirmed.Len())
	return snapshot, nil
}

// Purpose: Own the terminal for the lifetime of the render loop.
// Key aspects: Close is deferred right after open so panics restore the
// terminal; the explicit Close surfaces teardown errors. The console log sink
// is detached while the alternate screen is up.
// Upstream: run.
// Downstream: ui.OpenTerminal, ui.Loop.
func runDashboard(fanout *logFanout, snapshot *casedata.Snapshot) error {
	terminal, err := ui.OpenTerminal()
	if err != nil {
		return err
	}
	fanout.SetConsole(nil)
	defer func() {
		_ = terminal.Close()
		fanout.SetConsole(os.Stderr)
	}()
	stop := terminal.ForwardSignals(os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	metrics := ui.NewMetrics()
	runErr := ui.NewLoop(terminal.Screen, ui.NewDashboard(snapshot), metrics).Run()
	stop()
	closeErr := terminal.Close()
	fanout.SetConsole(os.Stderr)

	log.Printf("Dashboard closed: %s", metrics.Summary())
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func comma(v uint64) string {
	if v > math.MaxInt64 {
		return strconv.FormatUint(v, 10)
	}
	return humanize.Comma(int64(v))
}
