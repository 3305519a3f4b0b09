package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

// roundStarts[r] is the flat index of the first game of round r; the last entry
// closes the table so that roundStarts[r+1]-roundStarts[r] is the size of round r.
var roundStarts = [models.RoundCount + 1]int{0, 32, 48, 56, 60, 62, 63}

var roundNames = [models.RoundCount]string{
	"First Round",
	"Second Round",
	"Sweet Sixteen",
	"Elite Eight",
	"Final Four",
	"Championship",
}

// RoundStart returns the index of the first game of a round.
func RoundStart(round int) int {
	mustRound(round)
	return roundStarts[round]
}

// RoundSize returns the number of games played in a round.
func RoundSize(round int) int {
	mustRound(round)
	return roundStarts[round+1] - roundStarts[round]
}

func RoundName(round int) string {
	mustRound(round)
	return roundNames[round]
}

// RoundOf returns the round a game index belongs to.
func RoundOf(index int) int {
	mustIndex(index)
	for r := 0; r < models.RoundCount; r++ {
		if index < roundStarts[r+1] {
			return r
		}
	}
	panic("unreachable")
}

// PrevGames returns the two games whose winners meet in game index. ok is false
// for first round games.
func PrevGames(index int) (first, second int, ok bool) {
	round := RoundOf(index)
	if round == 0 {
		return 0, 0, false
	}
	j := index - roundStarts[round]
	first = roundStarts[round-1] + 2*j
	return first, first + 1, true
}

// NextGame returns the game the winner of index advances to. ok is false for the
// championship game.
func NextGame(index int) (next int, ok bool) {
	round := RoundOf(index)
	if round == models.RoundCount-1 {
		return 0, false
	}
	j := index - roundStarts[round]
	return roundStarts[round+1] + j/2, true
}

// NextSlot returns the team slot (0 home, 1 away) the winner of index takes in
// its next game.
func NextSlot(index int) int {
	return (index - roundStarts[RoundOf(index)]) % 2
}

func mustRound(round int) {
	if round < 0 || round >= models.RoundCount {
		panic(fmt.Sprintf("brackets: round %d out of range [0,%d)", round, models.RoundCount))
	}
}

func mustIndex(index int) {
	if index < 0 || index >= models.GameCount {
		panic(fmt.Sprintf("brackets: game index %d out of range [0,%d)", index, models.GameCount))
	}
}
