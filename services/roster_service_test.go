package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_GetTournament(t *testing.T) {
	svc := NewRosterService(repositories.NewMemoryRosterRepository(newTestTournament("cup")))

	tournament, err := svc.GetTournament(context.Background(), "cup")
	require.NoError(t, err)
	assert.Equal(t, "Tournament cup", tournament.Name)
	assert.Len(t, tournament.Teams, 64)

	_, err = svc.GetTournament(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestRosterService_GetTournamentInvalid(t *testing.T) {
	broken := newTestTournament("broken")
	broken.Teams[20].Name = broken.Teams[3].Name
	svc := NewRosterService(repositories.NewMemoryRosterRepository(broken))

	_, err := svc.GetTournament(context.Background(), "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRoster)
	assert.ErrorIs(t, err, brackets.ErrDuplicateTeam)

	verr, ok := brackets.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, 20, verr.Index)
}

func TestRosterService_ListTournaments(t *testing.T) {
	svc := NewRosterService(repositories.NewMemoryRosterRepository(newTestTournament("b"), newTestTournament("a")))

	ids, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	empty, err := NewRosterService(repositories.NewMemoryRosterRepository()).ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty)
}

func TestRosterService_VerifyAll(t *testing.T) {
	good := []string{"a", "b", "c", "d", "e", "f"}
	repo := repositories.NewMemoryRosterRepository()
	for _, id := range good {
		require.NoError(t, repo.Import(context.Background(), newTestTournament(id)))
	}
	svc := NewRosterService(repo)
	assert.NoError(t, svc.VerifyAll(context.Background()))

	short := newTestTournament("short")
	short.Teams = short.Teams[:48]
	require.NoError(t, repo.Import(context.Background(), short))

	err := svc.VerifyAll(context.Background())
	assert.ErrorIs(t, err, ErrInvalidRoster)
	assert.ErrorIs(t, err, brackets.ErrRosterSize)
}
