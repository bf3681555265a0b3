package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Command completed
	ExitPartialReport = 1 // Report rendered but some session files were unreadable
	ExitError         = 2 // Configuration or runtime error
)

// PartialReportError indicates that a report was produced but one or more
// session files could not be parsed.
type PartialReportError struct {
	Skipped int
	Total   int
}

func (e *PartialReportError) Error() string {
	return fmt.Sprintf("report skipped %d of %d session file(s)", e.Skipped, e.Total)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var partialErr *PartialReportError
		if errors.As(err, &partialErr) {
			os.Exit(ExitPartialReport)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
