// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、对话请求数、库存批次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、生成服务调用耗时
//
// # 使用示例
//
//	// 1. 启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码中记录指标
//	start := time.Now()
//	answer, err := generator.Generate(ctx, prompt)
//	metrics.ObserveHistogram(metrics.GenerationDuration, time.Since(start).Seconds())
//
// 所有辅助函数对未初始化的指标是空操作，单元测试无需先调用InitMetrics。
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
// 3. 避免高基数标签（不要用user_id、session_id作为标签）
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 对话检索指标

	// ChatRequestsTotal 对话请求总数
	// 标签：scope（system/bookstore）、result（success/invalid/upstream_error/error）
	ChatRequestsTotal *prometheus.CounterVec

	// GenerationDuration 生成服务调用耗时
	GenerationDuration prometheus.Histogram

	// GenerationFailuresTotal 生成服务失败次数
	// 标签：reason（timeout/rejected/upstream）
	GenerationFailuresTotal *prometheus.CounterVec

	// PayloadParseFailuresTotal 推荐载荷解析失败次数（已降级处理）
	PayloadParseFailuresTotal prometheus.Counter

	// RecommendationsTotal 推荐结果来源
	// 标签：source（model/candidates）
	RecommendationsTotal *prometheus.CounterVec

	// CandidateFallbacksTotal 关键词检索无结果、退回默认排序的次数
	CandidateFallbacksTotal *prometheus.CounterVec

	// 库存账本指标

	// InventoryBatchesTotal 库存批次总数
	// 标签：operation（purchase/refund）、result（success/rejected/error）
	InventoryBatchesTotal *prometheus.CounterVec

	// InventoryUnitsTotal 成功调整的库存件数
	InventoryUnitsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息投递指标

	// MessagesPublishedTotal 事件发布总数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// OutboxFailuresTotal 发件箱投递失败次数
	// 标签：final（true表示已放弃投递）
	OutboxFailuresTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标（重复调用安全）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "对话请求总数",
		},
		[]string{"scope", "result"},
	)

	// 生成服务通常需要数秒
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "生成服务调用耗时（秒）",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	GenerationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_failures_total",
			Help: "生成服务失败次数",
		},
		[]string{"reason"},
	)

	PayloadParseFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_payload_parse_failures_total",
			Help: "推荐载荷解析失败次数",
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "推荐结果来源统计",
		},
		[]string{"source"},
	)

	CandidateFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_fallbacks_total",
			Help: "候选检索退回默认排序的次数",
		},
		[]string{"scope"},
	)

	InventoryBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_batches_total",
			Help: "库存批次总数",
		},
		[]string{"operation", "result"},
	)

	InventoryUnitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_units_total",
			Help: "成功调整的库存件数",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	OutboxFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_failures_total",
			Help: "发件箱投递失败次数",
		},
		[]string{"final"},
	)
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// AddCounterVec CounterVec增加指定值
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, value float64) {
	if counter == nil {
		return
	}
	counter.With(labels).Add(value)
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
