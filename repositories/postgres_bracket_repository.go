package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/lib/pq"
)

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

// Create inserts the bracket row and all of its games in one transaction.
func (r *postgresBracketRepository) Create(ctx context.Context, bracket *models.Bracket) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO brackets (name, tournament_id)
			VALUES ($1, $2)
			RETURNING id, created_at`
		err := tx.QueryRowContext(ctx, query, bracket.Name, bracket.TournamentID).
			Scan(&bracket.ID, &bracket.CreatedAt)
		if err != nil {
			return r.handleBracketError(err)
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("bracket_games",
			"bracket_id", "game_index", "round",
			"home_team", "away_team", "home_score", "away_score", "completed",
			"prev_home", "prev_away", "next_game"))
		if err != nil {
			return fmt.Errorf("failed to prepare game copy for bracket %d: %w", bracket.ID, err)
		}
		defer stmt.Close()

		for i := range bracket.Games {
			g := &bracket.Games[i]
			_, err := stmt.ExecContext(ctx,
				bracket.ID, g.Index, g.Round,
				nullInt(g.Teams[0]), nullInt(g.Teams[1]), g.Score[0], g.Score[1], g.Completed,
				nullInt(g.Prev[0]), nullInt(g.Prev[1]), nullInt(g.Next),
			)
			if err != nil {
				return fmt.Errorf("failed to copy game %d of bracket %d: %w", g.Index, bracket.ID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to flush game copy for bracket %d: %w", bracket.ID, err)
		}
		return nil
	})
}

func (r *postgresBracketRepository) GetByID(ctx context.Context, id int) (*models.Bracket, error) {
	bracket := &models.Bracket{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, tournament_id, created_at FROM brackets WHERE id = $1`, id).
		Scan(&bracket.ID, &bracket.Name, &bracket.TournamentID, &bracket.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket by id %d: %w", id, err)
	}

	query := `
		SELECT game_index, round, home_team, away_team, home_score, away_score, completed,
		       prev_home, prev_away, next_game
		FROM bracket_games
		WHERE bracket_id = $1
		ORDER BY game_index ASC`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query games of bracket %d: %w", id, err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var (
			g                  models.Game
			home, away         sql.NullInt64
			prevHome, prevAway sql.NullInt64
			next               sql.NullInt64
		)
		if scanErr := rows.Scan(
			&g.Index, &g.Round, &home, &away, &g.Score[0], &g.Score[1], &g.Completed,
			&prevHome, &prevAway, &next,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", scanErr)
		}
		if g.Index < 0 || g.Index >= models.GameCount {
			return nil, fmt.Errorf("%w: game index %d", ErrBracketCorrupt, g.Index)
		}
		g.Teams = [2]*int{intFromNull(home), intFromNull(away)}
		g.Prev = [2]*int{intFromNull(prevHome), intFromNull(prevAway)}
		g.Next = intFromNull(next)
		bracket.Games[g.Index] = g
		loaded++
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during game rows iteration: %w", err)
	}
	if loaded != models.GameCount {
		return nil, fmt.Errorf("%w: bracket %d has %d games", ErrBracketCorrupt, id, loaded)
	}
	return bracket, nil
}

func (r *postgresBracketRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketSummary, error) {
	query := `
		SELECT id, name, tournament_id, created_at
		FROM brackets
		WHERE tournament_id = $1
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query brackets for tournament %q: %w", tournamentID, err)
	}
	defer rows.Close()

	summaries := make([]models.BracketSummary, 0)
	for rows.Next() {
		var s models.BracketSummary
		if scanErr := rows.Scan(&s.ID, &s.Name, &s.TournamentID, &s.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan bracket row: %w", scanErr)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket rows iteration: %w", err)
	}
	return summaries, nil
}

func (r *postgresBracketRepository) UpdateGames(ctx context.Context, bracketID int, games []models.Game) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE bracket_games
			SET home_team = $1, away_team = $2, home_score = $3, away_score = $4, completed = $5
			WHERE bracket_id = $6 AND game_index = $7`
		for i := range games {
			g := &games[i]
			result, err := tx.ExecContext(ctx, query,
				nullInt(g.Teams[0]), nullInt(g.Teams[1]), g.Score[0], g.Score[1], g.Completed,
				bracketID, g.Index,
			)
			if err != nil {
				return fmt.Errorf("UpdateGames: failed to update game %d of bracket %d: %w", g.Index, bracketID, err)
			}
			if err := checkAffectedRows(result, ErrBracketGameNotFound); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresBracketRepository) handleBracketError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := pqErrorCode(err); ok {
		if code == pqForeignKeyViolation && constraint == "brackets_tournament_id_fkey" {
			return ErrBracketTournamentInvalid
		}
	}
	return err
}
