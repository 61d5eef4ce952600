// Package logging 初始化全局 slog 日志
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup 按运行模式安装默认 logger：release 输出 JSON，其余输出文本并打开 Debug 级别
func Setup(mode string) *slog.Logger {
	logger := New(os.Stdout, mode)
	slog.SetDefault(logger)
	return logger
}

// New 创建 logger，不修改全局默认值
func New(w io.Writer, mode string) *slog.Logger {
	if mode == "release" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
