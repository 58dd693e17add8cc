package messaging

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/xiebiao/bookbridge/internal/domain/outbox"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/pkg/metrics"
)

// Publisher 消息发布接口(pkg/mq.Publisher实现)
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
	Exchange() string
}

// OutboxRelay 发件箱投递任务
// 1. 按固定间隔扫描pending事件并按创建顺序发布
// 2. 单条失败不影响同批其他事件,下一轮继续重试
// 3. 失败次数达到MaxAttempts后标记为failed,不再投递
// 4. 多实例部署时同一事件可能被重复投递,消费方按MessageId去重
type OutboxRelay struct {
	repo        outbox.Repository
	publisher   Publisher
	interval    time.Duration
	batchSize   int
	maxAttempts int
	now         func() time.Time
}

// NewOutboxRelay 创建投递任务
func NewOutboxRelay(repo outbox.Repository, publisher Publisher, cfg config.OutboxConfig) *OutboxRelay {
	r := &OutboxRelay{
		repo:        repo,
		publisher:   publisher,
		interval:    cfg.Interval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
	if r.interval <= 0 {
		r.interval = 5 * time.Second
	}
	if r.batchSize <= 0 {
		r.batchSize = 100
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = 10
	}
	return r
}

// Run 循环投递直到ctx取消
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("发件箱投递任务已启动", "interval", r.interval, "exchange", r.publisher.Exchange())

	for {
		select {
		case <-ctx.Done():
			slog.Info("发件箱投递任务已停止")
			return nil
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "扫描发件箱失败", "error", err)
			}
		}
	}
}

// RelayOnce 投递一批事件,返回成功投递的条数
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	pending, err := r.repo.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, msg := range pending {
		if ctx.Err() != nil {
			return published, ctx.Err()
		}
		if r.relay(ctx, msg) {
			published++
		}
	}
	return published, nil
}

func (r *OutboxRelay) relay(ctx context.Context, msg *outbox.Message) bool {
	logger := slog.With("message_id", msg.MessageID, "event_type", msg.EventType, "trace_id", msg.TraceID)

	if err := r.publisher.Publish(ctx, msg.EventType, msg.MessageID, msg.Payload); err != nil {
		final := msg.Attempts+1 >= r.maxAttempts
		metrics.IncCounterVec(metrics.OutboxFailuresTotal, map[string]string{"final": strconv.FormatBool(final)})
		if final {
			logger.ErrorContext(ctx, "事件投递失败,已放弃", "attempts", msg.Attempts+1, "error", err)
		} else {
			logger.WarnContext(ctx, "事件投递失败,稍后重试", "attempts", msg.Attempts+1, "error", err)
		}
		if markErr := r.repo.MarkAttemptFailed(ctx, msg.ID, err.Error(), final); markErr != nil {
			logger.ErrorContext(ctx, "更新事件状态失败", "error", markErr)
		}
		return false
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    r.publisher.Exchange(),
		"routing_key": msg.EventType,
	})
	if err := r.repo.MarkPublished(ctx, msg.ID, r.now()); err != nil {
		// 已发布但未标记,下一轮会重复投递
		logger.ErrorContext(ctx, "更新事件状态失败", "error", err)
	}
	return true
}
