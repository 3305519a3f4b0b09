// tournament-bracket/brackets/single_elimination.go
package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination64"
}

// GenerateBracket seeds the 32 first round games from the roster and links all
// 63 games through the round start table. It panics when the roster does not
// have RosterSize entries; any other malformation is the caller's bug.
func (g *SingleEliminationGenerator) GenerateBracket(params GenerateBracketParams) *models.Bracket {
	if params.Tournament == nil {
		panic("brackets: GenerateBracket called without a tournament")
	}
	if n := len(params.Tournament.Teams); n != models.RosterSize {
		panic(fmt.Sprintf("brackets: GenerateBracket needs a validated %d-team roster, got %d entries", models.RosterSize, n))
	}

	bracket := &models.Bracket{
		Name:         params.Name,
		TournamentID: params.Tournament.ID,
	}

	for i := range bracket.Games {
		game := &bracket.Games[i]
		game.Index = i
		game.Round = RoundOf(i)

		if first, second, ok := PrevGames(i); ok {
			game.Prev = [2]*int{intPtr(first), intPtr(second)}
		}
		if next, ok := NextGame(i); ok {
			game.Next = intPtr(next)
		}
	}

	for gi := 0; gi < RoundSize(0); gi++ {
		home, away := FirstRoundPositions(gi)
		bracket.Games[gi].Teams = [2]*int{intPtr(home), intPtr(away)}
	}

	return bracket
}

func intPtr(v int) *int {
	return &v
}
