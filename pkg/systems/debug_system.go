package systems

import (
	"fmt"
	"strings"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// 调试快捷键
const (
	KeyPause     = ebiten.KeyF1
	KeyStep      = ebiten.KeyF2
	KeyCollision = ebiten.KeyF3
	KeyHierarchy = ebiten.KeyF4
	KeyCamera    = ebiten.KeyF5
)

// 网格参数
const (
	gridHalfExtent = 20
	axisLength     = 3
)

var (
	gridColor  = mgl32.Vec4{0.4, 0.4, 0.4, 1}
	axisColors = [3]mgl32.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}
)

// HierarchySource 提供身份列表的场景实现此接口（game.BaseScene 即是）
type HierarchySource interface {
	IDs() []ecs.ObjectID
}

// DebugSystem 调试界面：暂停/单步、碰撞体显示、实体列表、相机切换
//
// 实现 game.DebugService。每个逻辑帧在场景更新之前调用 Update。
// 按住 Delete 再按 Esc 请求退出。
type DebugSystem struct {
	input    utils.Input
	settings *game.SettingsManager
	camera   *CameraSystem
	logger   *zap.Logger

	enabled bool
	paused  bool
	step    bool
	quit    bool

	hierarchy func() HierarchySource
}

// NewDebugSystem 创建调试系统
//
// 参数：
//   - input: 输入服务
//   - settings: 调试设置（显示开关持久化），不能为 nil
//   - camera: 相机系统，可为 nil（F5 无效）
//   - enabled: false 时除退出组合键外所有快捷键无效，碰撞体不显示
//   - startPaused: 启动时处于暂停状态
func NewDebugSystem(input utils.Input, settings *game.SettingsManager, camera *CameraSystem, enabled, startPaused bool, logger *zap.Logger) *DebugSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	ds := &DebugSystem{
		input:    input,
		settings: settings,
		camera:   camera,
		logger:   logger.Named("debug"),
		enabled:  enabled,
		paused:   enabled && startPaused,
	}
	if camera != nil && enabled && settings.GetSettings().DebugCamera {
		camera.SetKind(CameraDebug)
	}
	return ds
}

// SetHierarchySource 设置实体列表的来源（通常返回当前场景）
func (ds *DebugSystem) SetHierarchySource(src func() HierarchySource) {
	ds.hierarchy = src
}

// Update 处理快捷键
func (ds *DebugSystem) Update() {
	ds.step = false
	if ds.input == nil {
		return
	}
	if ds.input.IsKeyPressed(ebiten.KeyDelete) && ds.input.IsKeyJustPressed(ebiten.KeyEscape) {
		ds.quit = true
	}
	if !ds.enabled {
		return
	}

	s := ds.settings.GetSettings()
	changed := false
	switch {
	case ds.input.IsKeyJustPressed(KeyPause):
		ds.paused = !ds.paused
		ds.logger.Debug("pause toggled", zap.Bool("paused", ds.paused))
	case ds.input.IsKeyJustPressed(KeyStep):
		if ds.paused {
			ds.step = true
		}
	case ds.input.IsKeyJustPressed(KeyCollision):
		s.ShowCollision = !s.ShowCollision
		changed = true
	case ds.input.IsKeyJustPressed(KeyHierarchy):
		s.ShowHierarchy = !s.ShowHierarchy
		changed = true
	case ds.input.IsKeyJustPressed(KeyCamera):
		if ds.camera != nil {
			ds.camera.Toggle()
			s.DebugCamera = ds.camera.Kind() == CameraDebug
			changed = true
		}
	}
	if changed {
		if err := ds.settings.Save(); err != nil {
			ds.logger.Warn("failed to save debug settings", zap.Error(err))
		}
	}
}

// UpdateEnabled 实现 game.DebugService：未暂停，或暂停中单步的那一帧
func (ds *DebugSystem) UpdateEnabled() bool {
	return !ds.paused || ds.step
}

// CollisionVisible 实现 game.DebugService
func (ds *DebugSystem) CollisionVisible() bool {
	return ds.enabled && ds.settings.GetSettings().ShowCollision
}

// Paused 是否暂停
func (ds *DebugSystem) Paused() bool { return ds.paused }

// QuitRequested 是否请求退出
func (ds *DebugSystem) QuitRequested() bool { return ds.quit }

// DrawWorld 向线段渲染器提交地面网格和坐标轴（在场景 Draw 之前调用，由场景统一刷新）
func (ds *DebugSystem) DrawWorld(r render.Service) {
	if !ds.enabled || !ds.settings.GetSettings().ShowGrid {
		return
	}
	for i := -gridHalfExtent; i <= gridHalfExtent; i++ {
		f := float32(i)
		e := float32(gridHalfExtent)
		r.AddLine(mgl32.Vec3{f, 0, -e}, mgl32.Vec3{f, 0, e}, gridColor)
		r.AddLine(mgl32.Vec3{-e, 0, f}, mgl32.Vec3{e, 0, f}, gridColor)
	}
	for axis := 0; axis < 3; axis++ {
		var to mgl32.Vec3
		to[axis] = axisLength
		r.AddLine(mgl32.Vec3{}, to, axisColors[axis])
	}
}

// Overlay 屏幕左上角的状态文本
func (ds *DebugSystem) Overlay() string {
	if !ds.enabled {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "TPS %.1f  FPS %.1f\n", ebiten.ActualTPS(), ebiten.ActualFPS())
	if ds.paused {
		b.WriteString("PAUSED (F1 resume, F2 step)\n")
	}
	if ds.camera != nil {
		fmt.Fprintf(&b, "camera: %s (F5)\n", ds.camera.Kind())
	}
	if ds.settings.GetSettings().ShowHierarchy && ds.hierarchy != nil {
		if src := ds.hierarchy(); src != nil {
			b.WriteString("hierarchy:\n")
			for _, id := range src.IDs() {
				b.WriteString("  ")
				b.WriteString(id.String())
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// DrawOverlay 绘制状态文本
func (ds *DebugSystem) DrawOverlay(screen *ebiten.Image) {
	if text := ds.Overlay(); text != "" {
		ebitenutil.DebugPrint(screen, text)
	}
}
