package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"golang.org/x/sync/errgroup"
)

const verifyConcurrency = 4

type RosterService interface {
	// GetTournament returns a tournament whose roster passed ValidateRoster.
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]string, error)
	// VerifyAll validates every known roster and returns the first failure.
	VerifyAll(ctx context.Context) error
}

type rosterService struct {
	rosterRepo repositories.RosterRepository
}

func NewRosterService(rosterRepo repositories.RosterRepository) RosterService {
	return &rosterService{rosterRepo: rosterRepo}
}

func (s *rosterService) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	tournament, err := s.rosterRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load roster of tournament %q: %w", tournamentID, err)
	}

	if err := brackets.ValidateRoster(tournament.Teams); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoster, tournamentID, err)
	}
	return tournament, nil
}

func (s *rosterService) ListTournaments(ctx context.Context) ([]string, error) {
	ids, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

func (s *rosterService) VerifyAll(ctx context.Context) error {
	ids, err := s.ListTournaments(ctx)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := s.GetTournament(gCtx, id)
			return err
		})
	}
	return g.Wait()
}
