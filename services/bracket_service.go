package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/storage"
)

const maxBracketNameLength = 100

// Broadcaster pushes messages to websocket subscribers of a room.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type CreateBracketInput struct {
	Name string `json:"name"`
}

type RecordResultInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

// GameView is a game with its round name and participants resolved.
type GameView struct {
	models.Game
	RoundName string       `json:"round_name"`
	Home      *models.Team `json:"home,omitempty"`
	Away      *models.Team `json:"away,omitempty"`
}

type BracketView struct {
	models.BracketSummary
	TournamentName string       `json:"tournament_name"`
	Champion       *models.Team `json:"champion,omitempty"`
	Games          []GameView   `json:"games"`
}

type BracketService interface {
	CreateBracket(ctx context.Context, tournamentID string, input CreateBracketInput) (*BracketView, error)
	GetBracket(ctx context.Context, bracketID int) (*BracketView, error)
	ListBrackets(ctx context.Context, tournamentID string) ([]models.BracketSummary, error)
	ListRoundGames(ctx context.Context, bracketID int, round int) ([]GameView, error)
	RecordGameResult(ctx context.Context, bracketID int, gameIndex int, input RecordResultInput) ([]GameView, error)
	ClearGameResult(ctx context.Context, bracketID int, gameIndex int) ([]GameView, error)
	ExportBracket(ctx context.Context, bracketID int) (*storage.UploadResult, error)
}

type bracketService struct {
	rosters     RosterService
	bracketRepo repositories.BracketRepository
	generator   brackets.BracketGenerator
	uploader    storage.FileUploader
	broadcaster Broadcaster
	logger      *slog.Logger
	now         func() time.Time

	// resultsMu serializes read-modify-write cycles on stored brackets.
	resultsMu sync.Mutex
}

// NewBracketService wires the bracket use cases. uploader and broadcaster may be
// nil: export then fails with ErrExportUnavailable and updates are not pushed.
func NewBracketService(
	rosters RosterService,
	bracketRepo repositories.BracketRepository,
	generator brackets.BracketGenerator,
	uploader storage.FileUploader,
	broadcaster Broadcaster,
	logger *slog.Logger,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		rosters:     rosters,
		bracketRepo: bracketRepo,
		generator:   generator,
		uploader:    uploader,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *bracketService) CreateBracket(ctx context.Context, tournamentID string, input CreateBracketInput) (*BracketView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBracketNameRequired
	}
	if utf8.RuneCountInString(name) > maxBracketNameLength {
		return nil, fmt.Errorf("%w: maximum is %d characters", ErrBracketNameTooLong, maxBracketNameLength)
	}

	tournament, err := s.rosters.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	bracket := s.generator.GenerateBracket(brackets.GenerateBracketParams{
		Name:       name,
		Tournament: tournament,
	})

	if err := s.bracketRepo.Create(ctx, bracket); err != nil {
		if errors.Is(err, repositories.ErrBracketTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrBracketCreateFailed, err)
	}

	s.logger.Info("bracket created",
		slog.Int("bracket_id", bracket.ID),
		slog.String("tournament_id", tournament.ID),
		slog.String("generator", s.generator.GetName()),
	)
	return newBracketView(bracket, tournament), nil
}

func (s *bracketService) GetBracket(ctx context.Context, bracketID int) (*BracketView, error) {
	bracket, tournament, err := s.load(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	return newBracketView(bracket, tournament), nil
}

func (s *bracketService) ListBrackets(ctx context.Context, tournamentID string) ([]models.BracketSummary, error) {
	if _, err := s.rosters.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	summaries, err := s.bracketRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: tournament %s: %w", ErrBracketsListFailed, tournamentID, err)
	}
	if summaries == nil {
		return []models.BracketSummary{}, nil
	}
	return summaries, nil
}

func (s *bracketService) ListRoundGames(ctx context.Context, bracketID int, round int) ([]GameView, error) {
	if round < 0 || round >= models.RoundCount {
		return nil, fmt.Errorf("%w: %d", ErrRoundNotFound, round)
	}
	bracket, tournament, err := s.load(ctx, bracketID)
	if err != nil {
		return nil, err
	}

	start := brackets.RoundStart(round)
	games := make([]GameView, 0, brackets.RoundSize(round))
	for i := start; i < start+brackets.RoundSize(round); i++ {
		games = append(games, newGameView(&bracket.Games[i], tournament))
	}
	return games, nil
}

func (s *bracketService) RecordGameResult(ctx context.Context, bracketID int, gameIndex int, input RecordResultInput) ([]GameView, error) {
	if input.HomeScore == nil || input.AwayScore == nil {
		return nil, fmt.Errorf("%w: home_score and away_score are required", ErrInvalidGameResult)
	}

	return s.applyResult(ctx, bracketID, func(b *models.Bracket) ([]int, error) {
		return brackets.RecordResult(b, gameIndex, *input.HomeScore, *input.AwayScore)
	})
}

func (s *bracketService) ClearGameResult(ctx context.Context, bracketID int, gameIndex int) ([]GameView, error) {
	return s.applyResult(ctx, bracketID, func(b *models.Bracket) ([]int, error) {
		return brackets.ClearResult(b, gameIndex)
	})
}

func (s *bracketService) ExportBracket(ctx context.Context, bracketID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}
	view, err := s.GetBracket(ctx, bracketID)
	if err != nil {
		return nil, err
	}

	js, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBracketExportFailed, err)
	}

	key := storage.BracketSnapshotKey(view.TournamentID, view.ID, s.now())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(js))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBracketExportFailed, err)
	}

	s.logger.Info("bracket exported", slog.Int("bracket_id", bracketID), slog.String("key", result.Key))
	return result, nil
}

// applyResult loads a bracket, lets mutate change its results, stores the
// changed games and pushes them to subscribers.
func (s *bracketService) applyResult(ctx context.Context, bracketID int, mutate func(b *models.Bracket) ([]int, error)) ([]GameView, error) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()

	bracket, tournament, err := s.load(ctx, bracketID)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(bracket)
	if err != nil {
		return nil, mapResultError(err)
	}

	games := make([]models.Game, 0, len(changed))
	for _, idx := range changed {
		games = append(games, bracket.Games[idx])
	}
	if err := s.bracketRepo.UpdateGames(ctx, bracketID, games); err != nil {
		return nil, fmt.Errorf("%w: bracket %d: %w", ErrResultPersistFailed, bracketID, err)
	}

	views := make([]GameView, 0, len(games))
	for i := range games {
		views = append(views, newGameView(&games[i], tournament))
	}

	s.logger.Info("game result updated",
		slog.Int("bracket_id", bracketID),
		slog.Int("game_index", changed[0]),
		slog.Bool("completed", games[0].Completed),
	)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(brackets.BracketRoom(bracketID), brackets.WebSocketMessage{
			Type:    brackets.MessageGameUpdated,
			Payload: views,
			RoomID:  brackets.BracketRoom(bracketID),
		})
	}
	return views, nil
}

func (s *bracketService) load(ctx context.Context, bracketID int) (*models.Bracket, *models.Tournament, error) {
	bracket, err := s.bracketRepo.GetByID(ctx, bracketID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, nil, ErrBracketNotFound
		}
		return nil, nil, fmt.Errorf("failed to load bracket %d: %w", bracketID, err)
	}

	tournament, err := s.rosters.GetTournament(ctx, bracket.TournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("bracket %d: %w", bracketID, err)
	}
	return bracket, tournament, nil
}

func mapResultError(err error) error {
	switch {
	case errors.Is(err, brackets.ErrGameIndexOutOfRange):
		return fmt.Errorf("%w: %w", ErrGameNotFound, err)
	case errors.Is(err, brackets.ErrDownstreamCompleted):
		return fmt.Errorf("%w: %w", ErrResultLocked, err)
	case errors.Is(err, brackets.ErrGameNotReady),
		errors.Is(err, brackets.ErrNegativeScore),
		errors.Is(err, brackets.ErrTiedScore),
		errors.Is(err, brackets.ErrGameNotCompleted):
		return fmt.Errorf("%w: %w", ErrInvalidGameResult, err)
	default:
		return err
	}
}

func newBracketView(b *models.Bracket, t *models.Tournament) *BracketView {
	view := &BracketView{
		BracketSummary: b.Summary(),
		TournamentName: t.Name,
		Champion:       t.Team(brackets.Champion(b)),
		Games:          make([]GameView, 0, models.GameCount),
	}
	for i := range b.Games {
		view.Games = append(view.Games, newGameView(&b.Games[i], t))
	}
	return view
}

func newGameView(g *models.Game, t *models.Tournament) GameView {
	return GameView{
		Game:      g.Clone(),
		RoundName: brackets.RoundName(g.Round),
		Home:      t.Team(g.Teams[0]),
		Away:      t.Team(g.Teams[1]),
	}
}
