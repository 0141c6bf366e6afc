package task

import "github.com/hibiken/asynq"

// QueueConfig pairs a queue name with the server config that caps it.
type QueueConfig struct {
	Queue  string
	Config asynq.Config
}

// ServerConfigs returns one single-queue server config per processing queue.
// The Queues map on a shared asynq server only weights dequeue priority, so
// a busy queue can borrow the whole worker pool; a dedicated server per
// queue makes each Concurrency value a hard cap.
func ServerConfigs(imageConcurrency, videoConcurrency, documentConcurrency int) []QueueConfig {
	mk := func(queue string, concurrency int) QueueConfig {
		if concurrency < 1 {
			concurrency = 1
		}
		return QueueConfig{
			Queue: queue,
			Config: asynq.Config{
				Concurrency:    concurrency,
				Queues:         map[string]int{queue: 1},
				RetryDelayFunc: RetryDelay,
			},
		}
	}
	return []QueueConfig{
		mk(QueueImage, imageConcurrency),
		mk(QueueVideo, videoConcurrency),
		mk(QueueDocument, documentConcurrency),
	}
}
