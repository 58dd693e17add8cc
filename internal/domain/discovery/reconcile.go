package discovery

import (
	"context"
	"fmt"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// Policy 推荐列表的生成策略
type Policy string

const (
	// PolicyReconcile 以模型引用的ID为准,全部失效时退回候选集
	PolicyReconcile Policy = "reconcile"
	// PolicyCandidates 始终返回候选集
	PolicyCandidates Policy = "candidates"
)

// ParsePolicy 解析配置中的策略名,空值为PolicyReconcile
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyReconcile:
		return PolicyReconcile, nil
	case PolicyCandidates:
		return PolicyCandidates, nil
	default:
		return "", fmt.Errorf("unknown recommendation policy %q", s)
	}
}

// Source 推荐列表来源
type Source string

const (
	SourceModel      Source = "model"
	SourceCandidates Source = "candidates"
	SourceNone       Source = "none"
)

// Reconciler 把模型引用的ID还原为数据库中的图书
type Reconciler struct {
	repo   book.Repository
	policy Policy
}

// NewReconciler 创建Reconciler
func NewReconciler(repo book.Repository, policy Policy) *Reconciler {
	if policy == "" {
		policy = PolicyReconcile
	}
	return &Reconciler{repo: repo, policy: policy}
}

// Policy 当前策略
func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Reconcile 生成推荐列表
// 1. 按引用顺序重新查询上架图书,不存在或已下架的ID直接丢弃
// 2. 一本都没留下时,返回候选集的投影
func (r *Reconciler) Reconcile(ctx context.Context, ids []uint, candidates []*book.Book) ([]book.Info, Source, error) {
	if r.policy == PolicyReconcile && len(ids) > 0 {
		found, err := r.repo.FindActiveByIDs(ctx, ids)
		if err != nil {
			return nil, SourceNone, err
		}

		infos := make([]book.Info, 0, len(ids))
		for _, id := range ids {
			if b, ok := found[id]; ok {
				infos = append(infos, b.ToInfo())
				delete(found, id)
			}
		}
		if len(infos) > 0 {
			return infos, SourceModel, nil
		}
	}

	if len(candidates) == 0 {
		return []book.Info{}, SourceNone, nil
	}
	infos := make([]book.Info, 0, len(candidates))
	for _, b := range candidates {
		infos = append(infos, b.ToInfo())
	}
	return infos, SourceCandidates, nil
}
