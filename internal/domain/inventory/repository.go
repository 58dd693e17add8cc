package inventory

import (
	"context"
)

// Repository 库存仓储接口
// 所有方法都必须参与调用方context中的事务
type Repository interface {
	// LockForUpdate 按ID升序加行锁读取库存快照(SELECT ... FOR UPDATE)
	// 不存在的ID不会出现在结果中
	LockForUpdate(ctx context.Context, ids []uint) (map[uint]Snapshot, error)

	// Adjust 条件更新库存: quantity = quantity + delta WHERE quantity + delta >= 0
	// 条件不满足时返回ErrInsufficientStock
	Adjust(ctx context.Context, bookID uint, delta int) error
}

// EventRecorder 领域事件记录(与库存调整处于同一事务)
type EventRecorder interface {
	Record(ctx context.Context, eventType string, payload any) error
}

// Transactor 事务执行器
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
