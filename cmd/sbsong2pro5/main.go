package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/app"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// アプリケーションの実行
	application := app.New(cfg)
	summary, err := application.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
	if summary.Failed() {
		os.Exit(1)
	}
}
