package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/storage"
)

func newTestTournament(id string) *models.Tournament {
	roster := make(models.Roster, 0, models.RosterSize)
	for _, region := range []string{"South", "East", "Midwest", "West"} {
		for seed := 1; seed <= models.RegionSize; seed++ {
			roster = append(roster, models.Team{Name: fmt.Sprintf("%s %d", region, seed), Region: region, Seed: seed})
		}
	}
	return &models.Tournament{ID: id, Name: "Tournament " + id, Teams: roster}
}

type recordedMessage struct {
	room    string
	message interface{}
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, recordedMessage{room: roomID, message: message})
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.key, f.contentType, f.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
