// File: models/roster.go
package models

const (
	RegionCount = 4
	RegionSize  = 16
	RosterSize  = RegionCount * RegionSize

	RoundCount       = 6
	GameCount        = RosterSize - 1
	ChampionshipGame = GameCount - 1
)

// Roster is the ordered tournament field: regions are contiguous blocks of
// RegionSize teams ordered by seed, and the block order decides the Final Four
// pairings (region 0 meets region 1, region 2 meets region 3).
type Roster []Team

// Position returns the roster position of the team with the given name.
func (r Roster) Position(name string) (int, bool) {
	for i, t := range r {
		if t.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Regions returns the region names in roster order.
func (r Roster) Regions() []string {
	regions := make([]string, 0, RegionCount)
	for i := 0; i < len(r); i += RegionSize {
		regions = append(regions, r[i].Region)
	}
	return regions
}
