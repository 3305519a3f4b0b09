// Package data ships the tournament fields bundled with the service.
package data

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/Dosada05/tournament-bracket/models"
)

//go:embed rosters/*.json
var rosterFS embed.FS

var ErrMissingTournamentID = errors.New("tournament file has no id")

// Decode reads one tournament field in the bundled JSON layout:
// {"id": ..., "name": ..., "teams": [{"name", "region", "seed"}, ...]}.
// It does not validate the field.
func Decode(r io.Reader) (*models.Tournament, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var t models.Tournament
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament field: %w", err)
	}
	if t.ID == "" {
		return nil, ErrMissingTournamentID
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	return &t, nil
}

// Tournaments returns every bundled tournament field ordered by ID.
func Tournaments() ([]*models.Tournament, error) {
	entries, err := fs.ReadDir(rosterFS, "rosters")
	if err != nil {
		return nil, fmt.Errorf("failed to list bundled rosters: %w", err)
	}

	tournaments := make([]*models.Tournament, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		f, err := rosterFS.Open(path.Join("rosters", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to open bundled roster %s: %w", entry.Name(), err)
		}
		t, err := Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("bundled roster %s: %w", entry.Name(), err)
		}
		tournaments = append(tournaments, t)
	}

	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].ID < tournaments[j].ID
	})
	return tournaments, nil
}

// LoadFile reads an additional tournament field from disk.
func LoadFile(name string) (*models.Tournament, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", name, err)
	}
	return t, nil
}
