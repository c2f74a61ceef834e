package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/deletion"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// search runs one scan, printing matches as they are found. Ctrl+C stops
// the scan and keeps the matches found so far.
func search(ctx context.Context, con *console, ctrl *core.Controller, target string, kind model.MatchKind, volumes []model.Volume) (*core.ResultSet, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	h, err := ctrl.StartScan(ctx, target, kind, volumes)
	if err != nil {
		return nil, err
	}

	con.printf("\nSearching for %ss containing '%s'...\n\n", kind, target)

	sp := &spinner{c: con}
	printed := 0
	for ev := range h.Events() {
		switch e := ev.(type) {
		case core.VolumeStartedEvent:
			sp.clear()
			con.bold.Fprintf(con.out, "Scanning %s", e.Volume.Path)
			con.faint.Fprintf(con.out, " (%d/%d)\n", e.Index+1, e.Total)
		case core.MatchFoundEvent:
			sp.clear()
			con.printf("%4d. %s\n", e.Index, e.Match.Path)
			printed++
		case core.DirectoryVisitedEvent:
			sp.tick(time.Now(), e.Path)
		case core.VolumeFinishedEvent:
			sp.clear()
		}
	}
	sp.clear()

	set := h.Wait()
	p := h.Progress()
	if set.State == core.StateCancelled {
		con.warn("\nScan cancelled, showing matches found so far.")
	}
	printFrozen(con, set, printed)
	if set.Len() == 0 {
		con.println("\nNo matches found.")
	}
	con.faint.Fprintf(con.out, "\n%d match(es), %d directories, %s\n",
		set.Len(), p.DirsVisited, set.Duration().Round(time.Millisecond))

	return set, nil
}

// printFrozen lists the result set again when the live list missed some of
// its matches, so every number promptDelete accepts has been shown
func printFrozen(con *console, set *core.ResultSet, printed int) {
	if printed >= set.Len() {
		return
	}
	con.heading("Matches")
	for i, m := range set.Matches {
		con.printf("%4d. %s\n", i+1, m.Path)
	}
}

// promptDelete offers to delete one match of the last result set
func promptDelete(con *console, ctrl *core.Controller, set *core.ResultSet) {
	if set.Len() == 0 {
		return
	}

	choice, err := con.ask("\nDelete a file? Enter number or press Enter to skip: ")
	if err != nil || choice == "" {
		con.println("No files deleted.")
		return
	}

	index, err := strconv.Atoi(choice)
	if err != nil {
		// Not a number; the gate rejects index 0 as out of range
		index = 0
	}

	err = ctrl.ConfirmAndDelete(index, func(path string) bool {
		return con.confirm(fmt.Sprintf("Delete '%s'?", path))
	})
	printDeleteResult(con, err)
}

// printDeleteResult reports the outcome of a delete in plain words
func printDeleteResult(con *console, err error) {
	var failed *deletion.DeleteFailedError
	switch {
	case err == nil:
		con.success("File deleted successfully.")
	case errors.Is(err, deletion.ErrNotConfirmed):
		con.println("File not deleted.")
	case errors.As(err, &failed):
		con.fail("Failed to delete file: %v", failed.Err)
	case errors.Is(err, deletion.ErrInvalidSelection):
		con.fail("Invalid selection.")
	default:
		con.fail("Error: %v", err)
	}
}
