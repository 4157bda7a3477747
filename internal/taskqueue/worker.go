package taskqueue

import (
	"log"

	"github.com/hibiken/asynq"
)

// taskEnqueuer is what EnqueueGeneration needs from the asynq client;
// tests swap in a recorder.
type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

var (
	asynqClient taskEnqueuer
	asynqMux    = asynq.NewServeMux()
	asynqSrv    *asynq.Server
)

// StartWorkers starts Asynq workers. The client is built before returning
// so HTTP handlers can enqueue immediately; only the server loop runs in
// the background.
func StartWorkers(redisAddr string) {
	log.Printf("TASKQUEUE: Starting Asynq workers with Redis at %s", redisAddr)
	initWorkers(redisAddr)
	go func() {
		if err := asynqSrv.Run(asynqMux); err != nil {
			log.Fatalf("TASKQUEUE: Failed to start workers: %v", err)
		}
	}()
	log.Printf("TASKQUEUE: Workers started, waiting for tasks...")
}

func initWorkers(redisAddr string) {
	asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	asynqMux.HandleFunc(taskGenerateRotation, generateRotationTask)
	asynqSrv = asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency:  10,
		ErrorHandler: asynq.ErrorHandlerFunc(handleTaskError),
	})
}

// StopWorkers stops workers
func StopWorkers() {
	log.Printf("TASKQUEUE: Stopping workers...")
	asynqSrv.Stop()
	asynqClient.Close()
	log.Printf("TASKQUEUE: Workers stopped")
}
