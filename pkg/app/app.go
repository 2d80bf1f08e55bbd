// Package app 提供游戏应用的核心包装器
//
// 该包把服务的组装（渲染器、资源、脚本、相机、调试界面、场景管理器）
// 从 main 包提取出来，main.go 只负责读取配置、创建日志和窗口。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/scenes"
	"github.com/decker502/skillaction/pkg/scripting"
	"github.com/decker502/skillaction/pkg/systems"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// 背景色
var clearColor = color.RGBA{R: 40, G: 44, B: 52, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Engine 引擎配置，不能为 nil
	Engine *config.EngineConfig
	// FS 资源文件系统，包含 assets/、config/、scripts/
	FS fs.FS
	// Logger 日志器，可为 nil
	Logger *zap.Logger
	// Data 跨平台存储（调试设置），可为 nil
	Data *gdata.Manager
	// Input 输入服务，为 nil 时使用 ebiten 输入
	Input utils.Input
}

// inputUpdater 需要每帧刷新状态的输入服务
type inputUpdater interface {
	Update()
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg    *config.EngineConfig
	logger *zap.Logger

	input        utils.Input
	renderer     *render.EbitenRenderer
	resources    *game.ResourceManager
	scripts      *scripting.Engine
	camera       *systems.CameraSystem
	debug        *systems.DebugSystem
	sceneManager *game.SceneManager
	layout       *config.SceneLayout
}

// NewApp 创建并初始化游戏应用
//
// 加载资源清单、Lua 脚本和场景布局，注册 "game" 场景并切换到启动场景。
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("app: engine config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ec := cfg.Engine

	a := &App{
		cfg:    ec,
		logger: logger.Named("app"),
		input:  cfg.Input,
	}
	if a.input == nil {
		a.input = utils.NewEbitenInput()
	}

	store := render.NewAssetStore()
	a.renderer = render.NewEbitenRenderer(store, logger)
	a.resources = game.NewResourceManager(store, logger)
	if err := a.resources.LoadManifest(ctx, cfg.FS, ec.Assets.Manifest); err != nil {
		return nil, fmt.Errorf("资源加载失败: %w", err)
	}

	a.scripts = scripting.NewEngine(logger)
	if err := a.scripts.LoadFS(cfg.FS, ec.Assets.Scripts); err != nil {
		a.scripts.Close()
		return nil, fmt.Errorf("脚本加载失败: %w", err)
	}
	a.logger.Info("scripts loaded", zap.Strings("files", a.scripts.Loaded()))

	layout, err := config.LoadSceneLayout(cfg.FS, ec.Scene.Layout)
	if err != nil {
		a.scripts.Close()
		return nil, fmt.Errorf("场景布局加载失败: %w", err)
	}
	a.layout = layout

	settings := game.NewSettingsManager(cfg.Data, logger)
	if !settings.Saved() {
		s := settings.GetSettings()
		s.ShowCollision = ec.Debug.ShowCollision
		s.ShowHierarchy = ec.Debug.ShowHierarchy
	}

	a.camera = systems.NewCameraSystem(a.input, ec.Camera.Radius, ec.Camera.Pitch, ec.Camera.FollowRate, ec.Camera.FlySpeed)
	a.camera.SetAspect(ec.Window.Aspect())
	a.debug = systems.NewDebugSystem(a.input, settings, a.camera, ec.Debug.Enabled, ec.Debug.StartPaused, logger)

	a.sceneManager = game.NewSceneManager(a.debug, logger)
	a.sceneManager.Register("game", a.newGameScene)
	a.debug.SetHierarchySource(func() systems.HierarchySource {
		src, _ := a.sceneManager.GetCurrentScene().(systems.HierarchySource)
		return src
	})

	if err := a.sceneManager.ChangeScene(ec.Scene.Start); err != nil {
		a.scripts.Close()
		return nil, err
	}
	return a, nil
}

// newGameScene 场景工厂：每次切换都创建新的场景实例
func (a *App) newGameScene() game.Scene {
	return scenes.NewGameScene(scenes.GameSceneOptions{
		Name: "game",
		Services: ecs.Services{
			Renderer:     a.renderer,
			Input:        a.input,
			Scripts:      a.scripts,
			Logger:       a.logger,
			ScreenWidth:  a.cfg.Window.Width,
			ScreenHeight: a.cfg.Window.Height,
		},
		Debug:      a.debug,
		Layout:     a.layout,
		Player:     a.cfg.Player,
		Camera:     a.camera,
		FadeFrames: a.cfg.Scene.FadeFrames,
		OnClear:    a.restart,
	})
}

// restart 敌人清空后淡出并重新开始
func (a *App) restart() {
	if err := a.sceneManager.FadeOutTo("game", a.cfg.Scene.FadeFrames); err != nil {
		a.logger.Error("restart failed", zap.Error(err))
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（频率由 window.tps 决定）
func (a *App) Update() error {
	if u, ok := a.input.(inputUpdater); ok {
		u.Update()
	}
	a.debug.Update()
	if a.debug.QuitRequested() {
		a.logger.Info("quit requested")
		return ebiten.Termination
	}
	// 相机不受暂停影响，暂停时仍可移动调试相机观察场景
	a.camera.Update()
	return a.sceneManager.Update()
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	a.renderer.Begin(screen)
	a.debug.DrawWorld(a.renderer)
	a.sceneManager.Draw(screen)
	a.debug.DrawOverlay(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Shutdown 释放当前场景、资源和脚本虚拟机
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	a.resources.Unload()
	a.scripts.Close()
	a.logger.Info("shutdown complete")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Camera 返回相机系统
func (a *App) Camera() *systems.CameraSystem {
	return a.camera
}

// Debug 返回调试系统
func (a *App) Debug() *systems.DebugSystem {
	return a.debug
}
