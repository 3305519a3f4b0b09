package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// BracketSnapshotKey names the object a bracket snapshot is exported to. The
// timestamp keeps earlier exports of the same bracket.
func BracketSnapshotKey(tournamentID string, bracketID int, at time.Time) string {
	return fmt.Sprintf("brackets/%s/%d/%s.json", tournamentID, bracketID, at.UTC().Format("20060102T150405Z"))
}
