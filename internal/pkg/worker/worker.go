package worker

import (
	"time"

	"blog_crud_jwt/internal/domain/post/repository"
	"blog_crud_jwt/pkg/logger"
	"blog_crud_jwt/pkg/metrics"

	"go.uber.org/zap"
)

// ViewTask is one deduplicated post view waiting to be flushed to the store.
type ViewTask struct {
	PostID string
	Delta  int64
	Retry  int
}

// ViewFlushPool drains view tasks into the posts table off the request path.
// A failed flush re-queues with backoff; after MaxRetry the view is dropped
// and only counted in metrics.
type ViewFlushPool struct {
	TaskQueue  chan ViewTask
	RetryQueue chan ViewTask
	Repo       repository.PostRepository
	WorkerNum  int
	MaxRetry   int
}

func NewViewFlushPool(repo repository.PostRepository, workerNum int, bufferSize int) *ViewFlushPool {
	return &ViewFlushPool{
		TaskQueue:  make(chan ViewTask, bufferSize),
		RetryQueue: make(chan ViewTask, bufferSize/2),
		Repo:       repo,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *ViewFlushPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	if logger.Log != nil {
		logger.Log.Info("view flush pool started", zap.Int("workers", p.WorkerNum))
	}
}

func (p *ViewFlushPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.Repo.IncrementViews(task.PostID, task.Delta); err != nil {
			p.logError(id, task, err)

			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
				default:
					p.dropTask(task, err)
				}
			} else {
				p.dropTask(task, err)
			}
		}
	}
}

func (p *ViewFlushPool) retryWorker() {
	for task := range p.RetryQueue {
		// Back off before re-queuing; delay grows with the attempt.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			p.dropTask(task, nil)
		}
	}
}

// AddView enqueues a view without blocking the request. A full queue drops
// the view; views are best-effort by contract.
func (p *ViewFlushPool) AddView(postID string) {
	metrics.GetGlobalCollector().RecordViewEvent()

	select {
	case p.TaskQueue <- ViewTask{PostID: postID, Delta: 1}:
	default:
		p.dropTask(ViewTask{PostID: postID, Delta: 1}, nil)
	}
}

func (p *ViewFlushPool) logError(workerID int, task ViewTask, err error) {
	if logger.Log != nil {
		logger.Log.Warn("view flush failed",
			zap.Int("worker", workerID),
			zap.String("post_id", task.PostID),
			zap.Int("attempt", task.Retry),
			zap.Error(err))
	}
}

func (p *ViewFlushPool) dropTask(task ViewTask, err error) {
	metrics.GetGlobalCollector().RecordViewFlushFailure()
	if logger.Log != nil {
		logger.Log.Error("view dropped",
			zap.String("post_id", task.PostID),
			zap.Int64("delta", task.Delta),
			zap.Error(err))
	}
}
