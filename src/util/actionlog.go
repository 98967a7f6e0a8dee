package util

import (
	"fmt"
	"log"
	"os"
	"time"
)

// ActionLog appends one line per affected id per bulk action to a plain
// text file. A nil receiver or empty path disables logging. Writes use
// O_APPEND only; concurrent writers may interleave lines but each line
// stays intact at typical write sizes.
type ActionLog struct {
	path string
}

func NewActionLog(path string) *ActionLog {
	if path == "" {
		return nil
	}
	return &ActionLog{path: path}
}

// Record writes "<timestamp> | <ACTION> | ID: <id>" for every id, with the
// timestamp in local time. Failures are logged and swallowed: the action
// log is a best-effort collaborator, not part of the unit of work.
func (l *ActionLog) Record(action string, ids []int64) {
	if l == nil || len(ids) == 0 {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("ERROR: Failed to open action log %s: %v", l.path, err)
		return
	}
	defer f.Close()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	for _, id := range ids {
		if _, err := fmt.Fprintf(f, "%s | %s | ID: %d\n", stamp, action, id); err != nil {
			log.Printf("ERROR: Failed to write action log entry: %v", err)
			return
		}
	}
}
