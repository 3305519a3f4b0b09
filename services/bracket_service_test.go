package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bracketFixture struct {
	svc         BracketService
	repo        repositories.BracketRepository
	broadcaster *fakeBroadcaster
	uploader    *fakeUploader
}

func newBracketFixture(t *testing.T, withUploader bool) *bracketFixture {
	t.Helper()
	rosters := NewRosterService(repositories.NewMemoryRosterRepository(newTestTournament("cup")))
	f := &bracketFixture{
		repo:        repositories.NewMemoryBracketRepository(),
		broadcaster: &fakeBroadcaster{},
	}
	var svc BracketService
	if withUploader {
		f.uploader = &fakeUploader{}
		svc = NewBracketService(rosters, f.repo, brackets.NewSingleEliminationGenerator(), f.uploader, f.broadcaster, nil)
	} else {
		svc = NewBracketService(rosters, f.repo, brackets.NewSingleEliminationGenerator(), nil, f.broadcaster, nil)
	}
	f.svc = svc
	return f
}

func intp(v int) *int { return &v }

func TestBracketService_CreateBracket(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()

	view, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "  office pool  "})
	require.NoError(t, err)
	assert.Equal(t, 1, view.ID)
	assert.Equal(t, "office pool", view.Name)
	assert.Equal(t, "cup", view.TournamentID)
	assert.Equal(t, "Tournament cup", view.TournamentName)
	assert.Nil(t, view.Champion)
	require.Len(t, view.Games, models.GameCount)

	first := view.Games[0]
	assert.Equal(t, "First Round", first.RoundName)
	require.NotNil(t, first.Home)
	require.NotNil(t, first.Away)
	assert.Equal(t, "South 1", first.Home.Name)
	assert.Equal(t, "South 16", first.Away.Name)
	assert.Nil(t, view.Games[32].Home)
	assert.Equal(t, "Championship", view.Games[models.ChampionshipGame].RoundName)

	stored, err := f.repo.GetByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "office pool", stored.Name)
}

func TestBracketService_CreateBracketErrors(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "   "})
	assert.ErrorIs(t, err, ErrBracketNameRequired)

	_, err = f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: strings.Repeat("x", 101)})
	assert.ErrorIs(t, err, ErrBracketNameTooLong)

	_, err = f.svc.CreateBracket(ctx, "missing", CreateBracketInput{Name: "pool"})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestBracketService_CreateBracketInvalidRoster(t *testing.T) {
	broken := newTestTournament("broken")
	broken.Teams[17].Region = "West"
	rosters := NewRosterService(repositories.NewMemoryRosterRepository(broken))
	repo := repositories.NewMemoryBracketRepository()
	svc := NewBracketService(rosters, repo, brackets.NewSingleEliminationGenerator(), nil, nil, nil)

	_, err := svc.CreateBracket(context.Background(), "broken", CreateBracketInput{Name: "pool"})
	assert.ErrorIs(t, err, ErrInvalidRoster)
	assert.ErrorIs(t, err, brackets.ErrRegionNotContiguous)

	summaries, err := repo.ListByTournament(context.Background(), "broken")
	require.NoError(t, err)
	assert.Empty(t, summaries, "nothing is stored for an invalid roster")
}

func TestBracketService_GetAndList(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.GetBracket(ctx, 1)
	assert.ErrorIs(t, err, ErrBracketNotFound)

	empty, err := f.svc.ListBrackets(ctx, "cup")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "one"})
	require.NoError(t, err)
	_, err = f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "two"})
	require.NoError(t, err)

	summaries, err := f.svc.ListBrackets(ctx, "cup")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "one", summaries[0].Name)
	assert.Equal(t, "two", summaries[1].Name)

	_, err = f.svc.ListBrackets(ctx, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	view, err := f.svc.GetBracket(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "two", view.Name)
}

func TestBracketService_ListRoundGames(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	games, err := f.svc.ListRoundGames(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, games, 8)
	assert.Equal(t, 48, games[0].Index)
	assert.Equal(t, "Sweet Sixteen", games[0].RoundName)

	_, err = f.svc.ListRoundGames(ctx, 1, models.RoundCount)
	assert.ErrorIs(t, err, ErrRoundNotFound)
	_, err = f.svc.ListRoundGames(ctx, 9, 0)
	assert.ErrorIs(t, err, ErrBracketNotFound)
}

func TestBracketService_RecordGameResult(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	games, err := f.svc.RecordGameResult(ctx, 1, 1, RecordResultInput{HomeScore: intp(61), AwayScore: intp(66)})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.True(t, games[0].Completed)
	assert.Equal(t, 32, games[1].Index)
	require.NotNil(t, games[1].Away)
	assert.Equal(t, "South 9", games[1].Away.Name)

	view, err := f.svc.GetBracket(ctx, 1)
	require.NoError(t, err)
	assert.True(t, view.Games[1].Completed)
	assert.Equal(t, [2]int{61, 66}, view.Games[1].Score)

	require.Len(t, f.broadcaster.messages, 1)
	msg := f.broadcaster.messages[0]
	assert.Equal(t, "bracket_1", msg.room)
	wsMsg, ok := msg.message.(brackets.WebSocketMessage)
	require.True(t, ok)
	assert.Equal(t, brackets.MessageGameUpdated, wsMsg.Type)
}

func TestBracketService_RecordGameResultErrors(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	_, err = f.svc.RecordGameResult(ctx, 1, 0, RecordResultInput{HomeScore: intp(1)})
	assert.ErrorIs(t, err, ErrInvalidGameResult)

	_, err = f.svc.RecordGameResult(ctx, 1, 0, RecordResultInput{HomeScore: intp(1), AwayScore: intp(1)})
	assert.ErrorIs(t, err, ErrInvalidGameResult)
	assert.ErrorIs(t, err, brackets.ErrTiedScore)

	_, err = f.svc.RecordGameResult(ctx, 1, 40, RecordResultInput{HomeScore: intp(2), AwayScore: intp(1)})
	assert.ErrorIs(t, err, ErrInvalidGameResult)
	assert.ErrorIs(t, err, brackets.ErrGameNotReady)

	_, err = f.svc.RecordGameResult(ctx, 1, models.GameCount, RecordResultInput{HomeScore: intp(2), AwayScore: intp(1)})
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = f.svc.RecordGameResult(ctx, 5, 0, RecordResultInput{HomeScore: intp(2), AwayScore: intp(1)})
	assert.ErrorIs(t, err, ErrBracketNotFound)

	assert.Empty(t, f.broadcaster.messages)
}

func TestBracketService_ClearGameResultLocked(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	for _, idx := range []int{0, 1, 32} {
		_, err := f.svc.RecordGameResult(ctx, 1, idx, RecordResultInput{HomeScore: intp(2), AwayScore: intp(1)})
		require.NoError(t, err, "game %d", idx)
	}

	_, err = f.svc.ClearGameResult(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrResultLocked)

	games, err := f.svc.ClearGameResult(ctx, 1, 32)
	require.NoError(t, err)
	assert.False(t, games[0].Completed)

	games, err = f.svc.ClearGameResult(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Nil(t, games[1].Home)
}

func TestBracketService_Champion(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	for i := 0; i < models.GameCount; i++ {
		_, err := f.svc.RecordGameResult(ctx, 1, i, RecordResultInput{HomeScore: intp(3), AwayScore: intp(1)})
		require.NoError(t, err, "game %d", i)
	}

	view, err := f.svc.GetBracket(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, view.Champion)
	assert.Equal(t, "South 1", view.Champion.Name)
}

func TestBracketService_ConcurrentResults(t *testing.T) {
	f := newBracketFixture(t, false)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < brackets.RoundSize(0); i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := f.svc.RecordGameResult(ctx, 1, idx, RecordResultInput{HomeScore: intp(1), AwayScore: intp(0)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	games, err := f.svc.ListRoundGames(ctx, 1, 1)
	require.NoError(t, err)
	for _, g := range games {
		assert.True(t, g.HasTeams(), "second round game %d should have both teams", g.Index)
	}
}

func TestBracketService_ExportBracket(t *testing.T) {
	f := newBracketFixture(t, true)
	ctx := context.Background()
	_, err := f.svc.CreateBracket(ctx, "cup", CreateBracketInput{Name: "pool"})
	require.NoError(t, err)

	f.svc.(*bracketService).now = func() time.Time { return time.Date(2023, 4, 3, 21, 0, 0, 0, time.UTC) }

	result, err := f.svc.ExportBracket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "brackets/cup/1/20230403T210000Z.json", result.Key)
	assert.Equal(t, "https://cdn.example.com/brackets/cup/1/20230403T210000Z.json", result.Location)
	assert.Equal(t, "application/json", f.uploader.contentType)

	var snapshot BracketView
	require.NoError(t, json.Unmarshal(f.uploader.body, &snapshot))
	assert.Equal(t, "pool", snapshot.Name)
	assert.Len(t, snapshot.Games, models.GameCount)

	_, err = f.svc.ExportBracket(ctx, 2)
	assert.ErrorIs(t, err, ErrBracketNotFound)

	f.uploader.err = errors.New("bucket unavailable")
	_, err = f.svc.ExportBracket(ctx, 1)
	assert.ErrorIs(t, err, ErrBracketExportFailed)
}

func TestBracketService_ExportUnavailable(t *testing.T) {
	f := newBracketFixture(t, false)
	_, err := f.svc.ExportBracket(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
