package models

import (
	"encoding/json"
	"time"
)

// Rotation is a saved rotation document owned by one user. Data is stored
// as an opaque JSON blob of the form {"actions": [...]}; the rotation
// package decodes and validates it.
type Rotation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GenerationJob tracks an async AI generation request. Jobs live in redis
// with a TTL; Response holds the cleaned rotation JSON once done.
type GenerationJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Status    JobStatus `json:"status"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// JobStatus is the lifecycle state of a generation job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)
