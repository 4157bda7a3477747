package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"rotationhub/internal/generate"
	"rotationhub/internal/models"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Generation job records are kept in redis under this TTL; finished or
// failed jobs expire on their own.
const jobTTL = time.Hour

const taskGenerateRotation = "generate_rotation"

// JobStore is the slice of redis the job records need. Satisfied by
// *redis.Client; tests swap in a fake.
type JobStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Global instances - these should be initialized by the main application
var (
	redisClient JobStore
	aiClient    generate.Client
)

// SetGlobalInstances sets the global Redis and AI client instances
func SetGlobalInstances(redis JobStore, ai generate.Client) {
	redisClient = redis
	aiClient = ai
}

func jobKey(jobID string) string {
	return "generation:" + jobID
}

// GenerationTaskPayload for tasks
type GenerationTaskPayload struct {
	JobID  string
	UserID string
	Prompt string
}

// EnqueueGeneration records a pending job in redis and enqueues the
// generation task.
func EnqueueGeneration(ctx context.Context, jobID, userID, prompt string) error {
	log.Printf("TASKQUEUE: Enqueuing generation job %s for user %s", jobID, userID)
	job := models.GenerationJob{
		ID:        jobID,
		UserID:    userID,
		Status:    models.JobPending,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}
	if err := storeJob(ctx, job); err != nil {
		return err
	}

	payload, err := json.Marshal(GenerationTaskPayload{JobID: jobID, UserID: userID, Prompt: prompt})
	if err != nil {
		return err
	}
	task := asynq.NewTask(taskGenerateRotation, payload)
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(2), asynq.Timeout(2*time.Minute))
	if err != nil {
		log.Printf("TASKQUEUE: Failed to enqueue generation job %s: %v", jobID, err)
		return err
	}
	log.Printf("TASKQUEUE: Successfully enqueued task %s for job %s", info.ID, jobID)
	return nil
}

// GetJob fetches a generation job, scoped to its owner.
func GetJob(ctx context.Context, jobID, userID string) (*models.GenerationJob, error) {
	raw, err := redisClient.Get(ctx, jobKey(jobID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("job not found")
	}
	if err != nil {
		return nil, err
	}
	var job models.GenerationJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, fmt.Errorf("job not found")
	}
	return &job, nil
}

func storeJob(ctx context.Context, job models.GenerationJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, jobKey(job.ID), raw, jobTTL).Err()
}

// generateRotationTask handles the task
func generateRotationTask(ctx context.Context, t *asynq.Task) error {
	var payload GenerationTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Printf("TASKQUEUE: Failed to unmarshal task payload: %v", err)
		return err
	}
	log.Printf("TASKQUEUE: Processing generation job %s", payload.JobID)

	job, err := GetJob(ctx, payload.JobID, payload.UserID)
	if err != nil {
		log.Printf("TASKQUEUE: Job %s disappeared: %v", payload.JobID, err)
		return nil
	}

	text, err := aiClient.Generate(ctx, payload.Prompt)
	if err != nil {
		log.Printf("TASKQUEUE: Model call failed for job %s: %v", payload.JobID, err)
		return err
	}

	cleaned, err := generate.CleanResponse(text)
	if err != nil {
		// A malformed response is permanent, retrying the same prompt
		// rarely helps. Record the failure and stop.
		log.Printf("TASKQUEUE: Job %s produced malformed output: %v", payload.JobID, err)
		job.Status = models.JobFailed
		job.Error = err.Error()
		return storeJob(ctx, *job)
	}

	job.Status = models.JobDone
	job.Response = cleaned
	if err := storeJob(ctx, *job); err != nil {
		return err
	}
	log.Printf("TASKQUEUE: Generation job %s completed", payload.JobID)
	return nil
}

// handleTaskError runs as the asynq error handler. When the final retry of
// a generation task fails, the job record must still reach a terminal
// state, otherwise pollers see "pending" until the TTL turns the job into
// a 404.
func handleTaskError(ctx context.Context, task *asynq.Task, err error) {
	if task.Type() != taskGenerateRotation {
		return
	}
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if retried < maxRetry {
		return
	}
	failGenerationJob(task, err)
}

// failGenerationJob marks the job behind a task as permanently failed. It
// uses a fresh context: when the failure was the task timeout, the task
// context is already expired.
func failGenerationJob(task *asynq.Task, taskErr error) {
	var payload GenerationTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Printf("TASKQUEUE: Failed to unmarshal failed task payload: %v", err)
		return
	}

	ctx := context.Background()
	job, err := GetJob(ctx, payload.JobID, payload.UserID)
	if err != nil {
		log.Printf("TASKQUEUE: Job %s disappeared while recording failure: %v", payload.JobID, err)
		return
	}

	job.Status = models.JobFailed
	job.Error = taskErr.Error()
	if err := storeJob(ctx, *job); err != nil {
		log.Printf("TASKQUEUE: Failed to mark job %s as failed: %v", payload.JobID, err)
		return
	}
	log.Printf("TASKQUEUE: Generation job %s failed permanently: %v", payload.JobID, taskErr)
}
