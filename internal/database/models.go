package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CritiqueResult struct {
	ID           uuid.UUID
	Results      json.RawMessage
	AverageScore int32
	SessionID    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Resume struct {
	ID               uuid.UUID
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	StorageProvider  string
	ObjectKey        string
	StorageUrl       string
	UploadStatus     string
	CreatedAt        time.Time
	SessionID        uuid.UUID
}
