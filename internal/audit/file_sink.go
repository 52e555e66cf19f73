package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/dcoelho/company-match/model"
)

// auditEventName tags every record so downstream log pipelines can filter
// match decisions out of mixed streams.
const auditEventName = "match_decision"

// fileEvent is the serialized shape of one audit line: the MatchResult fields
// flattened alongside the event tag.
type fileEvent struct {
	Event string `json:"event"`
	model.MatchResult
}

// FileSink appends one JSON line per match attempt to a local file. Writes
// are serialized with a mutex so concurrent match attempts produce whole,
// interleaving-free lines.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (creating if needed) the append-only audit file at path.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: file}, nil
}

// Record implements Sink. An I/O failure is returned to the caller for
// reporting but must never abort the match that produced the record.
func (s *FileSink) Record(result model.MatchResult) error {
	line, err := json.Marshal(fileEvent{Event: auditEventName, MatchResult: result})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.file.Write(append(line, '\n'))
	return err
}

// Close releases the underlying file handle.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
