package inventory

import (
	"sort"
)

// Operation 库存操作类型
type Operation string

const (
	OperationPurchase Operation = "purchase"
	OperationRefund   Operation = "refund"
)

// Sign 库存变化方向(购买扣减,退货回补)
func (o Operation) Sign() int {
	if o == OperationPurchase {
		return -1
	}
	return 1
}

// EventType 对应的领域事件类型(同时用作MQ路由键)
func (o Operation) EventType() string {
	if o == OperationPurchase {
		return "inventory.purchased"
	}
	return "inventory.refunded"
}

// Adjustment 单本图书的调整请求
type Adjustment struct {
	BookID   uint `json:"bookId"`
	Quantity int  `json:"quantity"`
}

// Snapshot 加锁读取到的库存快照
type Snapshot struct {
	BookID   uint
	Title    string
	Quantity int
}

// MaxQuantity 单本图书在一个批次内合并后的数量上限
const MaxQuantity = 1_000_000

// Batch 一次全有或全无的库存调整
type Batch struct {
	Operation Operation
	Items     []Adjustment
}

// Validate 校验批次本身(不访问存储)
// 规则: 批次非空,每项BookID>0且Quantity>0,同一本书合并后不超过MaxQuantity
func (b Batch) Validate() error {
	if len(b.Items) == 0 {
		return ErrEmptyBatch
	}
	totals := make(map[uint]int, len(b.Items))
	for _, item := range b.Items {
		if item.BookID == 0 {
			return ErrUnknownBook
		}
		if item.Quantity <= 0 || item.Quantity > MaxQuantity-totals[item.BookID] {
			return ErrInvalidQuantity
		}
		totals[item.BookID] += item.Quantity
	}
	return nil
}

// Merge 合并同一本书的多条调整,按BookID升序返回
// 升序加锁保证并发批次之间不会互相死锁
func (b Batch) Merge() []Adjustment {
	totals := make(map[uint]int, len(b.Items))
	for _, item := range b.Items {
		totals[item.BookID] += item.Quantity
	}

	merged := make([]Adjustment, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, Adjustment{BookID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].BookID < merged[j].BookID })
	return merged
}

// Check 在已加锁的快照上校验整批是否可执行
// 购买: 每本书必须存在且库存充足; 退货: 每本书必须存在
func (b Batch) Check(merged []Adjustment, snapshots map[uint]Snapshot) error {
	for _, adj := range merged {
		snap, ok := snapshots[adj.BookID]
		if !ok {
			return ErrUnknownBook
		}
		if b.Operation == OperationPurchase && snap.Quantity < adj.Quantity {
			return ErrInsufficientStock
		}
	}
	return nil
}

// TotalUnits 批次涉及的总件数
func TotalUnits(items []Adjustment) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// IDs 提取BookID列表
func IDs(items []Adjustment) []uint {
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.BookID
	}
	return ids
}
