package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrGameIndexOutOfRange = errors.New("game index out of range")
	ErrGameNotReady        = errors.New("game does not have both teams yet")
	ErrNegativeScore       = errors.New("score cannot be negative")
	ErrTiedScore           = errors.New("game cannot end in a tie")
	ErrDownstreamCompleted = errors.New("next game is already completed")
	ErrGameNotCompleted    = errors.New("game is not completed")
)

// RecordResult stores the final score of a game and moves the winner into its
// slot of the next game. It returns the indices of the games it changed. Only
// Teams, Score and Completed are written; the tree links are left alone.
func RecordResult(b *models.Bracket, index, homeScore, awayScore int) ([]int, error) {
	if index < 0 || index >= models.GameCount {
		return nil, fmt.Errorf("%w: %d", ErrGameIndexOutOfRange, index)
	}
	game := &b.Games[index]
	if !game.HasTeams() {
		return nil, fmt.Errorf("%w: game %d", ErrGameNotReady, index)
	}
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}
	if homeScore == awayScore {
		return nil, fmt.Errorf("%w: %d-%d", ErrTiedScore, homeScore, awayScore)
	}

	var next *models.Game
	if game.Next != nil {
		next = &b.Games[*game.Next]
		if next.Completed {
			return nil, fmt.Errorf("%w: game %d feeds completed game %d", ErrDownstreamCompleted, index, next.Index)
		}
	}

	game.Score = [2]int{homeScore, awayScore}
	game.Completed = true
	changed := []int{index}

	if next != nil {
		winner := *game.Winner()
		next.Teams[NextSlot(index)] = &winner
		changed = append(changed, next.Index)
	}
	return changed, nil
}

// ClearResult reverts a completed game and withdraws its winner from the next game.
func ClearResult(b *models.Bracket, index int) ([]int, error) {
	if index < 0 || index >= models.GameCount {
		return nil, fmt.Errorf("%w: %d", ErrGameIndexOutOfRange, index)
	}
	game := &b.Games[index]
	if !game.Completed {
		return nil, fmt.Errorf("%w: game %d", ErrGameNotCompleted, index)
	}

	var next *models.Game
	if game.Next != nil {
		next = &b.Games[*game.Next]
		if next.Completed {
			return nil, fmt.Errorf("%w: game %d feeds completed game %d", ErrDownstreamCompleted, index, next.Index)
		}
	}

	game.Score = [2]int{}
	game.Completed = false
	changed := []int{index}

	if next != nil {
		next.Teams[NextSlot(index)] = nil
		changed = append(changed, next.Index)
	}
	return changed, nil
}

// Champion returns the roster position of the tournament winner, or nil while the
// championship game is open.
func Champion(b *models.Bracket) *int {
	return b.Games[models.ChampionshipGame].Winner()
}
