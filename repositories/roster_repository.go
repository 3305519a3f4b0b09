package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrRosterNotFound = errors.New("tournament roster not found")
	ErrRosterConflict = errors.New("tournament roster already exists")
)

// RosterRepository is the roster source: it maps a tournament identifier to its
// ordered field. It does not validate what it returns.
type RosterRepository interface {
	GetByID(ctx context.Context, tournamentID string) (*models.Tournament, error)
	List(ctx context.Context) ([]string, error)
	Import(ctx context.Context, tournament *models.Tournament) error
}

type memoryRosterRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

// NewMemoryRosterRepository keeps rosters in a map. The given tournaments are
// copied; callers may keep mutating theirs.
func NewMemoryRosterRepository(tournaments ...*models.Tournament) RosterRepository {
	r := &memoryRosterRepository{tournaments: make(map[string]*models.Tournament, len(tournaments))}
	for _, t := range tournaments {
		r.tournaments[t.ID] = copyTournament(t)
	}
	return r
}

func (r *memoryRosterRepository) GetByID(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tournaments[tournamentID]
	if !ok {
		return nil, ErrRosterNotFound
	}
	return copyTournament(t), nil
}

func (r *memoryRosterRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.tournaments))
	for id := range r.tournaments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memoryRosterRepository) Import(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[tournament.ID]; exists {
		return ErrRosterConflict
	}
	r.tournaments[tournament.ID] = copyTournament(tournament)
	return nil
}

func copyTournament(t *models.Tournament) *models.Tournament {
	c := *t
	c.Teams = make(models.Roster, len(t.Teams))
	copy(c.Teams, t.Teams)
	return &c
}
