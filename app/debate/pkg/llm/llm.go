// Package llm 封装对话模型调用，带限流、超时和 429 重试。
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/config"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
)

// Completion 一次模型调用的结果
type Completion struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Generator 对话模型的最小接口，测试时注入桩实现
type Generator interface {
	Generate(ctx context.Context, system, user string) (*Completion, error)
}

// Client 基于 eino 的默认实现
type Client struct {
	cm         model.ChatModel
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
}

// NewClient 创建模型客户端。限流参数与重试次数来自配置。
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, err
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	burst := cfg.Concurrency.QPS
	if burst < 1 {
		burst = 1
	}
	logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", limit, burst)

	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	maxRetries := cfg.LLM.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &Client{
		cm:         cm,
		limiter:    rate.NewLimiter(limit, burst),
		timeout:    timeout,
		maxRetries: maxRetries,
	}, nil
}

// Generate 发起一次对话调用。仅对 429 类错误指数退避重试，其余错误直接返回。
func (c *Client) Generate(ctx context.Context, system, user string) (*Completion, error) {
	baseDelay := 2 * time.Second
	var lastErr error

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.cm.Generate(callCtx, messages)
		cancel()
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < c.maxRetries {
					logger.Log.Warnf("模型调用被限流，%v 后重试 (%d/%d)", baseDelay*time.Duration(1<<i), i+1, c.maxRetries)
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return nil, err
		}

		out := &Completion{Content: resp.Content}
		if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
			out.InputTokens = resp.ResponseMeta.Usage.PromptTokens
			out.OutputTokens = resp.ResponseMeta.Usage.CompletionTokens
		}
		return out, nil
	}

	return nil, lastErr
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
