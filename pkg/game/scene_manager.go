package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ErrUnknownScene 场景名没有注册工厂
var ErrUnknownScene = errors.New("game: unknown scene")

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖具体场景包
type SceneFactory func() Scene

// Fader 支持淡入淡出过渡的场景实现此接口
type Fader interface {
	FadeIn(frames int, done func())
	FadeOut(frames int, done func())
}

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// Scene switches are deferred: ChangeScene only records the request and the swap
// happens at the start of the next Update, never in the middle of a frame.
type SceneManager struct {
	current     Scene
	currentName string
	pending     Scene
	pendingName string

	factories map[string]SceneFactory
	debug     DebugService
	logger    *zap.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use ChangeScene to set the initial scene.
func NewSceneManager(debug DebugService, logger *zap.Logger) *SceneManager {
	if debug == nil {
		debug = NoDebug{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{
		factories: make(map[string]SceneFactory),
		debug:     debug,
		logger:    logger.Named("scene_manager"),
	}
}

// Register 注册场景工厂，同名覆盖
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// ChangeScene 请求切换到指定场景，下一次 Update 开始时生效
// 同一帧内多次请求时以最后一次为准。
func (sm *SceneManager) ChangeScene(name string) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	sm.SwitchTo(name, factory())
	return nil
}

// SwitchTo 直接提交一个已创建的场景（同样延迟到下一次 Update）
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.pending = scene
	sm.pendingName = name
	sm.logger.Info("scene change requested", zap.String("scene", name))
}

// FadeOutTo 当前场景淡出后切换到指定场景
// 当前场景不支持过渡时立刻请求切换。
func (sm *SceneManager) FadeOutTo(name string, frames int) error {
	if _, ok := sm.factories[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	f, ok := sm.current.(Fader)
	if !ok {
		return sm.ChangeScene(name)
	}
	f.FadeOut(frames, func() {
		if err := sm.ChangeScene(name); err != nil {
			sm.logger.Error("scene change after fade failed", zap.Error(err))
		}
	})
	return nil
}

// FadeIn 当前场景淡入（不支持过渡时直接调用 done）
func (sm *SceneManager) FadeIn(frames int, done func()) {
	if f, ok := sm.current.(Fader); ok {
		f.FadeIn(frames, done)
		return
	}
	if done != nil {
		done()
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.current
}

// CurrentName 当前场景名
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update 先执行挂起的场景切换，再在调试服务允许时更新当前场景
//
// 新场景 Init 失败时旧场景已经卸载，返回错误由调用方决定是否退出。
func (sm *SceneManager) Update() error {
	if err := sm.applyPending(); err != nil {
		return err
	}
	if sm.current != nil && sm.debug.UpdateEnabled() {
		sm.current.Update()
	}
	return nil
}

func (sm *SceneManager) applyPending() error {
	if sm.pending == nil {
		return nil
	}
	next, name := sm.pending, sm.pendingName
	sm.pending, sm.pendingName = nil, ""

	if sm.current != nil {
		sm.current.Uninit()
		sm.logger.Info("scene unloaded", zap.String("scene", sm.currentName))
	}
	sm.current, sm.currentName = nil, ""

	if err := next.Init(); err != nil {
		next.Uninit()
		return fmt.Errorf("init scene %q: %w", name, err)
	}
	sm.current, sm.currentName = next, name
	sm.logger.Info("scene loaded", zap.String("scene", name))
	return nil
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// Shutdown 卸载当前场景并丢弃挂起的切换
func (sm *SceneManager) Shutdown() {
	sm.pending, sm.pendingName = nil, ""
	if sm.current != nil {
		sm.current.Uninit()
		sm.logger.Info("scene unloaded", zap.String("scene", sm.currentName))
		sm.current, sm.currentName = nil, ""
	}
}
