package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/assert"
)

func TestRoundTable(t *testing.T) {
	wantSizes := []int{32, 16, 8, 4, 2, 1}
	wantStarts := []int{0, 32, 48, 56, 60, 62}

	total := 0
	for r := 0; r < models.RoundCount; r++ {
		assert.Equal(t, wantStarts[r], RoundStart(r), "start of round %d", r)
		assert.Equal(t, wantSizes[r], RoundSize(r), "size of round %d", r)
		total += RoundSize(r)
	}
	assert.Equal(t, models.GameCount, total)
}

func TestRoundName(t *testing.T) {
	assert.Equal(t, "First Round", RoundName(0))
	assert.Equal(t, "Sweet Sixteen", RoundName(2))
	assert.Equal(t, "Championship", RoundName(models.RoundCount-1))
}

func TestRoundOf(t *testing.T) {
	cases := map[int]int{0: 0, 31: 0, 32: 1, 47: 1, 48: 2, 55: 2, 56: 3, 59: 3, 60: 4, 61: 4, 62: 5}
	for index, round := range cases {
		assert.Equal(t, round, RoundOf(index), "game %d", index)
	}
}

func TestPrevAndNextGames(t *testing.T) {
	_, _, ok := PrevGames(5)
	assert.False(t, ok, "first round games have no previous games")

	first, second, ok := PrevGames(32)
	assert.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	first, second, ok = PrevGames(62)
	assert.True(t, ok)
	assert.Equal(t, 60, first)
	assert.Equal(t, 61, second)

	next, ok := NextGame(0)
	assert.True(t, ok)
	assert.Equal(t, 32, next)

	next, ok = NextGame(31)
	assert.True(t, ok)
	assert.Equal(t, 47, next)

	next, ok = NextGame(61)
	assert.True(t, ok)
	assert.Equal(t, 62, next)

	_, ok = NextGame(models.ChampionshipGame)
	assert.False(t, ok, "the championship game has no next game")
}

func TestNextSlotMatchesPrevOrder(t *testing.T) {
	for i := 0; i < models.ChampionshipGame; i++ {
		next, ok := NextGame(i)
		if !assert.True(t, ok, "game %d", i) {
			continue
		}
		first, second, ok := PrevGames(next)
		assert.True(t, ok)

		switch NextSlot(i) {
		case 0:
			assert.Equal(t, i, first, "game %d should feed the home slot of %d", i, next)
		case 1:
			assert.Equal(t, i, second, "game %d should feed the away slot of %d", i, next)
		default:
			t.Fatalf("unexpected slot %d for game %d", NextSlot(i), i)
		}
	}
}

func TestLayoutPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { RoundStart(-1) })
	assert.Panics(t, func() { RoundSize(models.RoundCount) })
	assert.Panics(t, func() { RoundOf(models.GameCount) })
	assert.Panics(t, func() { NextGame(-1) })
}

func TestFirstRoundPositions(t *testing.T) {
	home, away := FirstRoundPositions(0)
	assert.Equal(t, 0, home, "1 seed of region 0")
	assert.Equal(t, 15, away, "16 seed of region 0")

	home, away = FirstRoundPositions(1)
	assert.Equal(t, 7, home, "8 seed of region 0")
	assert.Equal(t, 8, away, "9 seed of region 0")

	home, away = FirstRoundPositions(7)
	assert.Equal(t, 1, home, "2 seed of region 0")
	assert.Equal(t, 14, away, "15 seed of region 0")

	home, away = FirstRoundPositions(8)
	assert.Equal(t, 16, home, "1 seed of region 1")
	assert.Equal(t, 31, away, "16 seed of region 1")

	home, away = FirstRoundPositions(31)
	assert.Equal(t, 49, home, "2 seed of region 3")
	assert.Equal(t, 62, away, "15 seed of region 3")
}

func TestFirstRoundPositionsCoverRosterOnce(t *testing.T) {
	seen := make(map[int]bool, models.RosterSize)
	for g := 0; g < RoundSize(0); g++ {
		home, away := FirstRoundPositions(g)
		assert.False(t, seen[home], "position %d used twice", home)
		assert.False(t, seen[away], "position %d used twice", away)
		seen[home], seen[away] = true, true
	}
	assert.Len(t, seen, models.RosterSize)
}
