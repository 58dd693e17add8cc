package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookbridge/internal/domain/inventory"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/metrics"
	"github.com/xiebiao/bookbridge/pkg/tracing"
)

const tracerName = "bookbridge/inventory"

// LedgerUseCase 库存账本用例(批量购买/退货)
//
// 核心问题:先查后改的竞态
// 错误实现:
//  1. 查询库存 → 够
//  2. 另一个请求同时查询 → 也够
//  3. 两个请求都扣减 → 超卖
//
// 正确实现:整批在一个事务里完成
//  1. 按ID升序SELECT FOR UPDATE锁定所有行(升序避免死锁)
//  2. 在锁定的快照上校验整批
//  3. 全部通过后才逐条条件更新(quantity + delta >= 0兜底)
//  4. 写入发件箱事件
//  5. COMMIT释放锁;任何一步失败整批回滚
type LedgerUseCase struct {
	repo   inventory.Repository
	events inventory.EventRecorder
	tx     inventory.Transactor
}

// NewLedgerUseCase 创建库存账本用例
func NewLedgerUseCase(repo inventory.Repository, events inventory.EventRecorder, tx inventory.Transactor) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, events: events, tx: tx}
}

// AdjustedEvent 库存调整事件(发件箱载荷)
type AdjustedEvent struct {
	Operation  inventory.Operation    `json:"operation"`
	Items      []inventory.Adjustment `json:"items"`
	TotalUnits int                    `json:"totalUnits"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Purchase 批量购买: 任一本书库存不足则整批失败,不修改任何库存
func (uc *LedgerUseCase) Purchase(ctx context.Context, items []inventory.Adjustment) error {
	return uc.apply(ctx, inventory.Batch{Operation: inventory.OperationPurchase, Items: items})
}

// Refund 批量退货: 任一本书不存在则整批失败,不修改任何库存
func (uc *LedgerUseCase) Refund(ctx context.Context, items []inventory.Adjustment) error {
	return uc.apply(ctx, inventory.Batch{Operation: inventory.OperationRefund, Items: items})
}

func (uc *LedgerUseCase) apply(ctx context.Context, batch inventory.Batch) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Ledger."+string(batch.Operation))
	defer func() { tracing.EndSpan(span, err) }()

	op := string(batch.Operation)
	defer func() {
		metrics.IncCounterVec(metrics.InventoryBatchesTotal, map[string]string{"operation": op, "result": batchResult(err)})
	}()

	// 1. 参数校验(不访问存储)
	if err := batch.Validate(); err != nil {
		return err
	}
	merged := batch.Merge()

	// 2. 事务内加锁、校验、更新、记录事件
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		snapshots, err := uc.repo.LockForUpdate(txCtx, inventory.IDs(merged))
		if err != nil {
			return err
		}
		if err := batch.Check(merged, snapshots); err != nil {
			return err
		}

		sign := batch.Operation.Sign()
		for _, adj := range merged {
			if err := uc.repo.Adjust(txCtx, adj.BookID, sign*adj.Quantity); err != nil {
				return err
			}
		}

		return uc.events.Record(txCtx, batch.Operation.EventType(), AdjustedEvent{
			Operation:  batch.Operation,
			Items:      merged,
			TotalUnits: inventory.TotalUnits(merged),
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		slog.WarnContext(ctx, "库存批次被拒绝", "operation", op, "items", len(merged), "error", err)
		return err
	}

	metrics.AddCounterVec(metrics.InventoryUnitsTotal, map[string]string{"operation": op}, float64(inventory.TotalUnits(merged)))
	slog.InfoContext(ctx, "库存批次已提交", "operation", op, "items", len(merged), "units", inventory.TotalUnits(merged))
	return nil
}

// batchResult 指标标签: 业务拒绝与系统错误分开统计
func batchResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.HasCode(err, apperrors.ErrCodeInternal), apperrors.HasCode(err, apperrors.ErrCodeDatabaseError), !apperrors.IsAppError(err):
		return "error"
	default:
		return "rejected"
	}
}
