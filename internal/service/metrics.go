package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cihai_ai_attempts_total",
			Help: "AI 服务商调用尝试次数，按服务商、消息格式和结果分类",
		},
		[]string{"provider", "shape", "status"},
	)

	aiAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cihai_ai_attempt_duration_seconds",
			Help:    "单次 AI 调用耗时（秒）",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "status"},
	)

	aiTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cihai_ai_tokens_total",
			Help: "服务商返回的 token 用量",
		},
		[]string{"provider", "kind"},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cihai_generations_total",
			Help: "内容生成请求结果",
		},
		[]string{"result"},
	)

	submissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cihai_submissions_total",
		Help: "成功提交的帖子数",
	})
)
