package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/tournament-bracket/data"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/require"
)

var testRegions = []string{"South", "East", "Midwest", "West"}

// newTestRoster builds a valid field with teams named "<Region> <seed>".
func newTestRoster() models.Roster {
	roster := make(models.Roster, 0, models.RosterSize)
	for _, region := range testRegions {
		for seed := 1; seed <= models.RegionSize; seed++ {
			roster = append(roster, models.Team{
				Name:   fmt.Sprintf("%s %d", region, seed),
				Region: region,
				Seed:   seed,
			})
		}
	}
	return roster
}

func newTestTournament() *models.Tournament {
	return &models.Tournament{ID: "test", Name: "Test Tournament", Teams: newTestRoster()}
}

func loadNCAA2023(t *testing.T) *models.Tournament {
	t.Helper()
	tournaments, err := data.Tournaments()
	require.NoError(t, err)
	for _, tournament := range tournaments {
		if tournament.ID == "ncaa-2023" {
			return tournament
		}
	}
	t.Fatal("bundled ncaa-2023 field not found")
	return nil
}

func teamName(t *models.Tournament, pos *int) string {
	if team := t.Team(pos); team != nil {
		return team.Name
	}
	return ""
}
