package models

import "time"

// Bracket owns the flat array of all games. Round r occupies a contiguous index
// range and links between rounds are plain indices into Games.
type Bracket struct {
	ID           int             `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	TournamentID string          `json:"tournament_id" db:"tournament_id"`
	Games        [GameCount]Game `json:"games" db:"-"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Clone returns a deep copy; the copy shares no pointers with b.
func (b *Bracket) Clone() *Bracket {
	c := *b
	for i := range b.Games {
		c.Games[i] = b.Games[i].Clone()
	}
	return &c
}

// BracketSummary is the listing view of a bracket, without its games.
type BracketSummary struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (b *Bracket) Summary() BracketSummary {
	return BracketSummary{ID: b.ID, Name: b.Name, TournamentID: b.TournamentID, CreatedAt: b.CreatedAt}
}
