package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrBracketNotFound          = errors.New("bracket not found")
	ErrBracketTournamentInvalid = errors.New("bracket tournament conflict or invalid")
	ErrBracketCorrupt           = errors.New("stored bracket does not have a full game tree")
	ErrBracketGameNotFound      = errors.New("bracket game not found")
)

// BracketRepository stores brackets. Create assigns ID and CreatedAt. UpdateGames
// persists only the result fields of the given games (Teams, Score, Completed);
// the tree links written by Create never change.
type BracketRepository interface {
	Create(ctx context.Context, bracket *models.Bracket) error
	GetByID(ctx context.Context, id int) (*models.Bracket, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketSummary, error)
	UpdateGames(ctx context.Context, bracketID int, games []models.Game) error
}

type memoryBracketRepository struct {
	mu       sync.RWMutex
	brackets map[int]*models.Bracket
	nextID   int
	now      func() time.Time
}

// NewMemoryBracketRepository keeps brackets in process memory. Every read and
// write goes through Clone, so no two callers share game state.
func NewMemoryBracketRepository() BracketRepository {
	return &memoryBracketRepository{
		brackets: make(map[int]*models.Bracket),
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryBracketRepository) Create(ctx context.Context, bracket *models.Bracket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bracket.ID = r.nextID
	bracket.CreatedAt = r.now()
	r.nextID++
	r.brackets[bracket.ID] = bracket.Clone()
	return nil
}

func (r *memoryBracketRepository) GetByID(ctx context.Context, id int) (*models.Bracket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brackets[id]
	if !ok {
		return nil, ErrBracketNotFound
	}
	return b.Clone(), nil
}

func (r *memoryBracketRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.BracketSummary, 0)
	for _, b := range r.brackets {
		if b.TournamentID == tournamentID {
			summaries = append(summaries, b.Summary())
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (r *memoryBracketRepository) UpdateGames(ctx context.Context, bracketID int, games []models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.brackets[bracketID]
	if !ok {
		return ErrBracketNotFound
	}
	for _, g := range games {
		if g.Index < 0 || g.Index >= models.GameCount {
			return ErrBracketGameNotFound
		}
	}

	// Apply on a copy so a failed update leaves the stored bracket untouched.
	updated := stored.Clone()
	for _, g := range games {
		src := g.Clone()
		dst := &updated.Games[g.Index]
		dst.Teams = src.Teams
		dst.Score = src.Score
		dst.Completed = src.Completed
	}
	r.brackets[bracketID] = updated
	return nil
}
