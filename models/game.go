package models

// Game is one matchup of the bracket. Teams hold roster positions (home first);
// Prev and Next hold indices into the owning bracket's game array.
type Game struct {
	Index     int     `json:"index" db:"game_index"`
	Round     int     `json:"round" db:"round"`
	Teams     [2]*int `json:"teams" db:"-"`
	Score     [2]int  `json:"score" db:"-"`
	Completed bool    `json:"completed" db:"completed"`
	Prev      [2]*int `json:"prev" db:"-"`
	Next      *int    `json:"next" db:"-"`
}

// HasTeams reports whether both participants are known.
func (g *Game) HasTeams() bool {
	return g.Teams[0] != nil && g.Teams[1] != nil
}

// Winner returns the roster position of the winning team of a completed game.
func (g *Game) Winner() *int {
	if !g.Completed || !g.HasTeams() {
		return nil
	}
	if g.Score[0] > g.Score[1] {
		return g.Teams[0]
	}
	if g.Score[1] > g.Score[0] {
		return g.Teams[1]
	}
	return nil
}

// Clone returns a copy of g that shares no pointers with it.
func (g *Game) Clone() Game {
	c := *g
	for i := range g.Teams {
		c.Teams[i] = copyInt(g.Teams[i])
		c.Prev[i] = copyInt(g.Prev[i])
	}
	c.Next = copyInt(g.Next)
	return c
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
