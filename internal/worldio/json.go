// Package worldio is a collaborator, not core: it reads and writes the
// JSON snapshot format §6 describes. The generator core never imports it
// and never performs I/O itself.
package worldio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// snapshot is the on-disk JSON shape: the same seven keys as the tabular
// snapshot, "schedule" holding a previously generated result if present.
type snapshot struct {
	domain.World
	Schedule []domain.ScheduleEntry `json:"schedule,omitempty"`
}

// ReadFile loads a world from a JSON snapshot file.
func ReadFile(path string) (domain.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.World{}, fmt.Errorf("open world snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	return Read(f)
}

// Read decodes a world from a JSON snapshot reader.
func Read(r io.Reader) (domain.World, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return domain.World{}, fmt.Errorf("decode world snapshot: %w", err)
	}
	return snap.World, nil
}

// WriteFile serializes a world and its generated schedule (if any) to a
// JSON snapshot file.
func WriteFile(path string, world domain.World, schedule []domain.ScheduleEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create world snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot{World: world, Schedule: schedule})
}
