package ecs

import (
	"errors"

	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrAlreadyAttached 实体已经被添加到场景
var ErrAlreadyAttached = errors.New("ecs: game object already attached")

// Object 由所有具体实体类型实现（嵌入 GameObject 即可获得默认实现）
//
// 覆盖 Uninit/Update/Draw 时应调用嵌入的 GameObject 的同名方法，
// 否则组件不会被更新、绘制或释放。
type Object interface {
	Base() *GameObject
	Init() error
	Uninit()
	Update()
	Draw()
	OnColliderHit(other Collider, thisTag string)
	OnDestroy()
}

// GameObject 实体基类：有序组件序列 + 渲染参数块 + 销毁标记 + 身份
//
// 生命周期：Constructed -> Initialized -> (Update/Draw)* -> DestroyPending -> Released。
// Destroy() 只做标记，真正的释放发生在场景帧末清扫。
type GameObject struct {
	// Param 渲染参数块，每帧推送给渲染组件
	Param render.Param
	// OldPos 上一帧位置，供碰撞后回退使用
	OldPos mgl32.Vec3

	components []Component
	destroy    bool
	released   bool
	attached   bool

	tag      Tag
	id       ObjectID
	handle   EntityID
	self     Object
	services *Services
}

// Attach 由场景在 Init 之前调用：绑定身份、句柄和服务，重置参数块
func Attach(obj Object, id ObjectID, handle EntityID, svc *Services) error {
	g := obj.Base()
	if g.attached {
		return ErrAlreadyAttached
	}
	g.attached = true
	g.self = obj
	g.id = id
	g.handle = handle
	g.services = svc
	g.Param = render.DefaultParam()
	return nil
}

// Place 由场景在 Init 之后调用，设置分类标签
func Place(obj Object, tag Tag) {
	obj.Base().tag = tag
}

// Release 执行销毁钩子与 Uninit，并把实体标记为已释放
// 已释放的实体不能再添加组件。
func Release(obj Object) {
	g := obj.Base()
	if g.released {
		return
	}
	obj.OnDestroy()
	obj.Uninit()
	g.released = true
	g.components = nil
}

// Teardown 只执行 Uninit 并标记为已释放（场景整体卸载时使用，不触发销毁钩子）
func Teardown(obj Object) {
	g := obj.Base()
	if g.released {
		return
	}
	obj.Uninit()
	g.released = true
	g.components = nil
}

// Base 返回自身
func (g *GameObject) Base() *GameObject { return g }

// Init 默认什么也不做
func (g *GameObject) Init() error { return nil }

// Uninit 按顺序释放所有组件（不受 Active 影响）
func (g *GameObject) Uninit() {
	for _, c := range g.components {
		c.Uninit()
	}
}

// Update 按顺序更新所有激活的组件
func (g *GameObject) Update() {
	for _, c := range g.components {
		if c.Active() {
			c.Update()
		}
	}
}

// Draw 绘制激活的组件
//
// 渲染组件先接收当前参数块再绘制；碰撞体跳过，只由场景的调试路径绘制。
func (g *GameObject) Draw() {
	for _, c := range g.components {
		if !c.Active() {
			continue
		}
		caps := c.Capabilities()
		if caps.Has(CapCollision) {
			continue
		}
		if caps.Has(CapRender) {
			if r, ok := c.(Renderable); ok {
				r.SetParam(g.Param)
			}
		}
		c.Draw()
	}
}

// OnColliderHit 默认无反应
func (g *GameObject) OnColliderHit(other Collider, thisTag string) {}

// OnDestroy 默认无反应
func (g *GameObject) OnDestroy() {}

// Destroy 标记为待销毁（单调，不可撤销）
func (g *GameObject) Destroy() { g.destroy = true }

// IsDestroy 是否待销毁
func (g *GameObject) IsDestroy() bool { return g.destroy }

// IsReleased 是否已被场景释放
func (g *GameObject) IsReleased() bool { return g.released }

// Tag 分类标签
func (g *GameObject) Tag() Tag { return g.tag }

// ID 身份
func (g *GameObject) ID() ObjectID { return g.id }

// Handle 场景 arena 句柄
func (g *GameObject) Handle() EntityID { return g.handle }

// Self 返回具体实体（嵌入本结构体的外层类型）
func (g *GameObject) Self() Object { return g.self }

// Services 返回注入的服务，未添加到场景时为 nil
func (g *GameObject) Services() *Services { return g.services }

// Logger 返回带实体字段的日志器
func (g *GameObject) Logger() *zap.Logger {
	if g.services == nil || g.services.Logger == nil {
		return zap.NewNop()
	}
	return g.services.Logger.With(zap.Stringer("entity", g.id))
}

// Components 组件序列（只读）
func (g *GameObject) Components() []Component { return g.components }

// World 返回世界矩阵（缩放 -> 旋转 -> 平移）
func (g *GameObject) World() mgl32.Mat4 { return g.Param.World() }

// Forward 局部 +Z 方向单位向量
func (g *GameObject) Forward() mgl32.Vec3 {
	return render.RotationMatrix(g.Param.Rotate).Col(2).Vec3()
}

// Right 局部 +X 方向单位向量
func (g *GameObject) Right() mgl32.Vec3 {
	return render.RotationMatrix(g.Param.Rotate).Col(0).Vec3()
}

// Up 局部 +Y 方向单位向量
func (g *GameObject) Up() mgl32.Vec3 {
	return render.RotationMatrix(g.Param.Rotate).Col(1).Vec3()
}

// MoveTo 把位置插值到 start -> end 之间（写入 Param.Pos）
func (g *GameObject) MoveTo(start, end mgl32.Vec3, t, duration float32, ease EaseFunc) {
	g.Param.Pos = Lerp3(start, end, t, duration, ease)
}

// MoveToInto 与 MoveTo 相同的插值，结果写入 dst
func (g *GameObject) MoveToInto(dst *mgl32.Vec3, start, end mgl32.Vec3, t, duration float32, ease EaseFunc) {
	*dst = Lerp3(start, end, t, duration, ease)
}
