package storage

import "time"

const currentSchemaVersion = "1"

// Record is a single best result.
type Record struct {
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// scoreFile is the on-disk layout of the scores file.
type scoreFile struct {
	Version string            `json:"version"`
	Scores  map[string]Record `json:"scores"`
}
