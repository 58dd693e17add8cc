package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookbridge/internal/domain/inventory"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// inventoryRepository 库存仓储实现
// 必须在TxManager.Transaction中调用,否则行锁在语句结束时即释放
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// LockForUpdate 悲观锁批量读取库存
// SELECT id, title, quantity FROM books WHERE id IN (?) ORDER BY id FOR UPDATE
// 注意: SQLite方言会忽略FOR UPDATE(整库写锁)
func (r *inventoryRepository) LockForUpdate(ctx context.Context, ids []uint) (map[uint]inventory.Snapshot, error) {
	snapshots := make(map[uint]inventory.Snapshot, len(ids))
	if len(ids) == 0 {
		return snapshots, nil
	}

	var models []BookModel
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "title", "quantity").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}

	for _, m := range models {
		snapshots[m.ID] = inventory.Snapshot{BookID: m.ID, Title: m.Title, Quantity: m.Quantity}
	}
	return snapshots, nil
}

// Adjust 原子更新库存
// UPDATE books SET quantity = quantity + ? WHERE id = ? AND quantity + ? >= 0
func (r *inventoryRepository) Adjust(ctx context.Context, bookID uint, delta int) error {
	result := dbFrom(ctx, r.db).
		Model(&BookModel{}).
		Where("id = ?", bookID).
		Where("quantity + ? >= 0", delta). // 防止库存为负
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		// 行已加锁且存在,条件不满足只可能是库存不足
		return inventory.ErrInsufficientStock
	}
	return nil
}
