package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/skillaction/pkg/app"
	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  = flag.String("config", "config/engine.toml", "引擎配置文件（资源文件系统内的路径）")
	overrideDir = flag.String("dir", "", "覆盖目录：其中的 assets/ config/ scripts/ 文件优先于嵌入资源")
	profileMode = flag.String("profile", "", "性能分析：cpu / mem，结果写入当前目录")
)

func main() {
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(resourcesFS, *overrideDir)

	cfg, err := config.LoadEngineConfig(embedded.FS(), *configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	data, err := gdata.Open(gdata.Config{AppName: "skillaction"})
	if err != nil {
		// 没有可写的存储时调试设置只保存在内存中
		logger.Warn("save data unavailable", zap.Error(err))
	}

	a, err := app.NewApp(context.Background(), app.Config{
		Engine: cfg,
		FS:     embedded.FS(),
		Logger: logger,
		Data:   data,
	})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	logger.Info("starting",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Window.TPS))

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// newLogger 按配置创建 zap 日志器（console 为彩色开发格式，json 为生产格式）
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
