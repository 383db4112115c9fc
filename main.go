package main

import (
	"fmt"
	"os"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/app"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "用法: safememefi <mint地址> [1H|24H|7D|30D]")
		os.Exit(2)
	}

	mint := os.Args[1]
	tf := model.Timeframe24H
	if len(os.Args) > 2 {
		tf = model.Timeframe(os.Args[2])
	}

	configPath := utils.GetConfigFilePath()
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	application := app.New()
	if err := application.Initialize(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "应用初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	if err := application.Run(mint, tf); err != nil {
		fmt.Fprintf(os.Stderr, "分析失败: %v\n", err)
		os.Exit(1)
	}
}
