package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/lib/pq"
)

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) GetByID(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	tournament := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM tournaments WHERE id = $1`, tournamentID).
		Scan(&tournament.ID, &tournament.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %q: %w", tournamentID, err)
	}

	query := `
		SELECT name, region, seed
		FROM tournament_teams
		WHERE tournament_id = $1
		ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams of tournament %q: %w", tournamentID, err)
	}
	defer rows.Close()

	tournament.Teams = make(models.Roster, 0, models.RosterSize)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.Name, &team.Region, &team.Seed); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		tournament.Teams = append(tournament.Teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return tournament, nil
}

func (r *postgresRosterRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tournaments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Import stores a tournament and its teams in roster order using COPY.
func (r *postgresRosterRepository) Import(ctx context.Context, tournament *models.Tournament) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tournaments (id, name) VALUES ($1, $2)`, tournament.ID, tournament.Name)
		if err != nil {
			if code, constraint, ok := pqErrorCode(err); ok && code == pqUniqueViolation && constraint == "tournaments_pkey" {
				return ErrRosterConflict
			}
			return fmt.Errorf("failed to insert tournament %q: %w", tournament.ID, err)
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("tournament_teams", "tournament_id", "position", "name", "region", "seed"))
		if err != nil {
			return fmt.Errorf("failed to prepare team copy: %w", err)
		}
		defer stmt.Close()

		for pos, team := range tournament.Teams {
			if _, err := stmt.ExecContext(ctx, tournament.ID, pos, team.Name, team.Region, team.Seed); err != nil {
				return fmt.Errorf("failed to copy team %q: %w", team.Name, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to flush team copy: %w", err)
		}
		return nil
	})
}
