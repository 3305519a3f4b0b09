package repositories

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func newTestTournament(id string) *models.Tournament {
	roster := make(models.Roster, 0, models.RosterSize)
	for _, region := range []string{"South", "East", "Midwest", "West"} {
		for seed := 1; seed <= models.RegionSize; seed++ {
			roster = append(roster, models.Team{Name: fmt.Sprintf("%s %d", region, seed), Region: region, Seed: seed})
		}
	}
	return &models.Tournament{ID: id, Name: "Tournament " + id, Teams: roster}
}

func newTestBracket(tournament *models.Tournament) *models.Bracket {
	return brackets.NewSingleEliminationGenerator().GenerateBracket(brackets.GenerateBracketParams{
		Name:       "office pool",
		Tournament: tournament,
	})
}
