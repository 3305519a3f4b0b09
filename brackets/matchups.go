package brackets

import "github.com/Dosada05/tournament-bracket/models"

// SeedMatchups lists the seeds of a region in first round order, read as pairs:
// (1,16), (8,9), (5,12), ... Assuming the better seed always wins, seeds 1 and 2
// can only meet in the regional final.
var SeedMatchups = [models.RegionSize]int{1, 16, 8, 9, 5, 12, 4, 13, 6, 11, 3, 14, 7, 10, 2, 15}

// FirstRoundPositions returns the roster positions of the home and away teams of
// first round game g (0..31).
func FirstRoundPositions(g int) (home, away int) {
	gamesPerRegion := models.RegionSize / 2
	region := g / gamesPerRegion
	local := g % gamesPerRegion

	base := region * models.RegionSize
	home = base + SeedMatchups[2*local] - 1
	away = base + SeedMatchups[2*local+1] - 1
	return home, away
}
