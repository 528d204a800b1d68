package worker

import (
	"strconv"
	"sync"
	"time"

	"inspyre/internal/pkg/push"
	"inspyre/pkg/logger"

	"go.uber.org/zap"
)

// NotifyTask 一条待发送的用户通知（私信提醒等）
type NotifyTask struct {
	UserID uint
	Title  string
	Body   string
	Ext    map[string]string
	Retry  int // 已重试次数
}

// Pool 通知工作池：有界队列 + 固定数量 worker + 有限重试
// 队列满时丢弃并记录日志，绝不阻塞请求路径
type Pool struct {
	taskQueue  chan NotifyTask
	retryQueue chan NotifyTask
	pusher     push.PushService
	workerNum  int
	maxRetry   int

	stopped  chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPool(pusher push.PushService, workerNum, bufferSize int) *Pool {
	return &Pool{
		taskQueue:  make(chan NotifyTask, bufferSize),
		retryQueue: make(chan NotifyTask, bufferSize/2),
		pusher:     pusher,
		workerNum:  workerNum,
		maxRetry:   3,
		stopped:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.workerNum + 1)
	for i := 0; i < p.workerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	logger.Log.Info("Notification worker pool started", zap.Int("workers", p.workerNum))
}

// Stop 停机：worker 排空主队列后退出，重试积压丢弃并记录。
// 阻塞到全部 worker 退出
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopped)
	})
	p.wg.Wait()
	logger.Log.Info("Notification worker pool stopped")
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopped:
			p.drain(id)
			return
		case task := <-p.taskQueue:
			p.handle(id, task)
		}
	}
}

// drain 停机时把主队列里剩余的任务发完
func (p *Pool) drain(id int) {
	for {
		select {
		case task := <-p.taskQueue:
			p.handle(id, task)
		default:
			return
		}
	}
}

func (p *Pool) handle(id int, task NotifyTask) {
	if err := p.process(task); err != nil {
		logger.Log.Warn("Failed to deliver notification",
			zap.Int("worker", id),
			zap.Uint("user_id", task.UserID),
			zap.Int("attempt", task.Retry),
			zap.Error(err),
		)

		if task.Retry < p.maxRetry {
			task.Retry++
			select {
			case p.retryQueue <- task:
			default:
				p.logDropped(task, "retry queue full")
			}
		} else {
			p.logDropped(task, "max retries exceeded")
		}
	}
}

func (p *Pool) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopped:
			for {
				select {
				case task := <-p.retryQueue:
					p.logDropped(task, "pool stopped")
				default:
					return
				}
			}
		case task := <-p.retryQueue:
			// 退避后再入队，避免立即重试
			time.Sleep(time.Duration(task.Retry) * time.Second)

			select {
			case p.taskQueue <- task:
			default:
				p.logDropped(task, "main queue full")
			}
		}
	}
}

func (p *Pool) process(task NotifyTask) error {
	if p.pusher == nil {
		// 未配置推送服务时静默丢弃
		return nil
	}
	return p.pusher.PushToAccount(strconv.FormatUint(uint64(task.UserID), 10), task.Title, task.Body, task.Ext)
}

func (p *Pool) logDropped(task NotifyTask, reason string) {
	logger.Log.Error("Notification dropped",
		zap.Uint("user_id", task.UserID),
		zap.String("reason", reason),
	)
}

// Enqueue 入队一条通知，非阻塞。停机后入队直接丢弃
func (p *Pool) Enqueue(task NotifyTask) {
	select {
	case <-p.stopped:
		p.logDropped(task, "pool stopped")
		return
	default:
	}

	select {
	case p.taskQueue <- task:
	default:
		p.logDropped(task, "queue full")
	}
}
