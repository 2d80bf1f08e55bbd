package components

import (
	"errors"
	"fmt"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/scripting"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrNoScriptEngine 实体没有注入脚本引擎
var ErrNoScriptEngine = errors.New("components: script engine not available")

// Script 由 Lua 行为表驱动的组件
//
// 行为表约定：init(self) 在绑定时调用一次，update(self) 每帧调用，
// 其余方法（如 on_hit）由实体通过 Call 触发。
// 运行时出错后组件自动停用，避免每帧刷日志。
type Script struct {
	ecs.BaseComponent
	inst *scripting.Instance
}

// AddScript 添加脚本组件并绑定行为
func AddScript(owner *ecs.GameObject, behavior string) (*Script, error) {
	s, err := ecs.AddComponent[Script](owner)
	if err != nil {
		return nil, err
	}
	if err := s.Bind(behavior); err != nil {
		return s, err
	}
	return s, nil
}

// Capabilities 脚本能力
func (s *Script) Capabilities() ecs.Capability { return ecs.CapScript }

// Bind 绑定行为表并调用 init
func (s *Script) Bind(behavior string) error {
	owner := s.Owner()
	if owner == nil || owner.Services() == nil || owner.Services().Scripts == nil {
		return fmt.Errorf("bind %q: %w", behavior, ErrNoScriptEngine)
	}
	inst, err := owner.Services().Scripts.NewInstance(behavior, scriptHost{owner})
	if err != nil {
		return err
	}
	s.inst = inst
	return s.Call("init")
}

// Behavior 已绑定的行为名
func (s *Script) Behavior() string {
	if s.inst == nil {
		return ""
	}
	return s.inst.Behavior()
}

// Instance 返回脚本实例，未绑定时为 nil
func (s *Script) Instance() *scripting.Instance { return s.inst }

// Update 调用 update(self)
func (s *Script) Update() {
	if s.inst == nil {
		return
	}
	if err := s.Call("update"); err != nil {
		s.Owner().Logger().Error("script disabled", zap.Error(err))
		s.SetActive(false)
	}
}

// Call 调用行为表中的任意方法
func (s *Script) Call(method string) error {
	if s.inst == nil {
		return nil
	}
	return s.inst.Call(method)
}

// scriptHost 把实体暴露给 Lua
type scriptHost struct {
	g *ecs.GameObject
}

func (h scriptHost) Position() (float32, float32, float32) {
	p := h.g.Param.Pos
	return p.X(), p.Y(), p.Z()
}

func (h scriptHost) SetPosition(x, y, z float32) {
	h.g.Param.Pos = mgl32.Vec3{x, y, z}
}

func (h scriptHost) Name() string { return h.g.ID().String() }

func (h scriptHost) Destroy() { h.g.Destroy() }

func (h scriptHost) Frame() uint64 {
	if svc := h.g.Services(); svc != nil && svc.World != nil {
		return svc.World.Frame()
	}
	return 0
}
