package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cihai_ugc_202508/internal/app"
	"cihai_ugc_202508/internal/config"
	"cihai_ugc_202508/pkg/logger"
)

// 逐个探测已配置的 AI 服务商，任一失败返回非零退出码
func main() {
	envFile := flag.String("env", ".env", "环境变量文件")
	timeout := flag.Duration("timeout", 30*time.Second, "单个服务商的超时")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log := logger.MustInit(logger.Config{Level: "warn", Encoding: "console", OutputPath: "stderr"})
	ai := app.NewAIService(cfg, nil, log, false)

	if len(ai.ConfiguredProviders()) == 0 {
		fmt.Println("未配置任何 AI 服务商（ZHIPU_API_KEY / DASHSCOPE_API_KEY / DEEPSEEK_API_KEY）")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout*time.Duration(len(ai.ConfiguredProviders())))
	defer cancel()

	failed := 0
	for _, c := range ai.CheckProviders(ctx) {
		if c.Err != nil {
			failed++
			fmt.Printf("✗ %-10s %-16s %6dms  %v\n", c.Provider, c.Model, c.Duration.Milliseconds(), c.Err)
			continue
		}
		fmt.Printf("✓ %-10s %-16s %6dms  %s\n", c.Provider, c.Model, c.Duration.Milliseconds(), c.Reply)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
