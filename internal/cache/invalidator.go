package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/socialgraph/pkg/logger"
)

type invalidateJob struct {
	keys  []string
	enqAt time.Time
}

// Invalidator applies cache invalidations asynchronously so graph writes never
// wait on Redis. A nil *Invalidator is a valid no-op.
type Invalidator struct {
	cache     *FollowerCache
	ch        chan invalidateJob
	metricsCh chan time.Duration
}

func NewInvalidator(cache *FollowerCache, queueSize int) *Invalidator {
	if cache == nil {
		return nil
	}
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &Invalidator{cache: cache, ch: make(chan invalidateJob, queueSize), metricsCh: make(chan time.Duration, 65536)}
}

func (inv *Invalidator) Start(workers int) func(context.Context) error {
	if inv == nil {
		return func(context.Context) error { return nil }
	}
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-inv.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := inv.cache.Invalidate(ctx, job.keys...); err != nil {
						logger.Warn("cache invalidate failed", zap.Strings("keys", job.keys), zap.Error(err))
					}
					cancel()
					if !job.enqAt.IsZero() {
						select {
						case inv.metricsCh <- time.Since(job.enqAt):
						default:
						}
					}
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		// 等待队列自然排空一小段时间
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(inv.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (inv *Invalidator) Enqueue(keys ...string) {
	if inv == nil || len(keys) == 0 {
		return
	}
	select {
	case inv.ch <- invalidateJob{keys: keys, enqAt: time.Now()}:
	default:
		logger.Warn("invalidator queue full, drop", zap.Strings("keys", keys))
	}
}

// Metrics 返回失效落地耗时的只读通道（每处理一条发送一次 duration）。
func (inv *Invalidator) Metrics() <-chan time.Duration {
	if inv == nil {
		return nil
	}
	return inv.metricsCh
}

// QueueLen 返回当前队列长度（采样值）。
func (inv *Invalidator) QueueLen() int {
	if inv == nil {
		return 0
	}
	return len(inv.ch)
}
