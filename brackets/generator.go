package brackets

import "github.com/Dosada05/tournament-bracket/models"

type GenerateBracketParams struct {
	Name       string
	Tournament *models.Tournament
}

// BracketGenerator builds the full game tree for a validated tournament field.
// Implementations trust their input: ValidateRoster must have accepted
// params.Tournament.Teams.
type BracketGenerator interface {
	GenerateBracket(params GenerateBracketParams) *models.Bracket

	GetName() string
}
