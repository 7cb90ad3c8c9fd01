//go:build linux
// +build linux

package capnslog

import (
	"fmt"

	"github.com/coreos/go-systemd/v22/journal"
)

// JournaldFormatter writes log entries to the systemd journal, mapping
// capnslog's levels onto journal priorities. NewJournaldFormatter returns an
// error if no journal is reachable (e.g. outside of systemd).
type JournaldFormatter struct{}

// NewJournaldFormatter builds a JournaldFormatter, or an error if the
// systemd journal is not reachable from this process.
func NewJournaldFormatter() (*JournaldFormatter, error) {
	if !journal.Enabled() {
		return nil, fmt.Errorf("capnslog: systemd journal not available")
	}
	return &JournaldFormatter{}, nil
}

func (j *JournaldFormatter) Format(pkg string, l LogLevel, _ int, entries ...LogEntry) {
	var msg string
	for _, e := range entries {
		msg += e.LogString()
	}
	priority := journal.PriInfo
	switch l {
	case CRITICAL:
		priority = journal.PriCrit
	case ERROR:
		priority = journal.PriErr
	case WARNING:
		priority = journal.PriWarning
	case NOTICE:
		priority = journal.PriNotice
	case INFO:
		priority = journal.PriInfo
	case DEBUG, TRACE:
		priority = journal.PriDebug
	}
	journal.Send(msg, priority, map[string]string{"PACKAGE": pkg})
}
