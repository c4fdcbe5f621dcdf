package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/tt-championship/models"
)

// SnapshotArchiver writes the final state of a championship as JSON.
type SnapshotArchiver struct {
	uploader FileUploader
}

func NewSnapshotArchiver(uploader FileUploader) *SnapshotArchiver {
	return &SnapshotArchiver{uploader: uploader}
}

// SnapshotKey is the object key of a championship's final snapshot.
func SnapshotKey(championshipID string) string {
	return fmt.Sprintf("championships/%s/final.json", championshipID)
}

// Archive uploads c and returns its public URL. Re-archiving overwrites the
// previous snapshot.
func (a *SnapshotArchiver) Archive(ctx context.Context, c *models.Championship) (string, error) {
	body, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode championship %s: %w", c.ID, err)
	}
	res, err := a.uploader.Upload(ctx, SnapshotKey(c.ID), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	return res.Location, nil
}
