package ecs

import (
	"errors"

	"github.com/decker502/skillaction/pkg/render"
)

var (
	// ErrNilOwner 组件必须绑定到一个实体
	ErrNilOwner = errors.New("ecs: component owner is nil")
	// ErrOwnerReleased 实体已经被场景释放
	ErrOwnerReleased = errors.New("ecs: component owner already released")
)

// Capability 组件能力位
//
// 实体在 Draw 时只查询这个判别值，不做运行时类型判断。
type Capability uint8

const (
	CapRender    Capability = 1 << iota // 接收渲染参数块并提交绘制
	CapCollision                        // 碰撞体，不参与常规绘制
	CapScript                           // 脚本驱动
)

// Has 检查是否包含指定能力
func (c Capability) Has(flag Capability) bool {
	return c&flag != 0
}

// Component 是挂在实体上的能力单元
//
// 组件只能通过 AddComponent 创建，创建后立刻 Init。
// Active 为 false 时实体不会调用它的 Update/Draw，但销毁时仍然会 Uninit。
type Component interface {
	Init()
	Uninit()
	Update()
	Draw()

	Owner() *GameObject
	Active() bool
	SetActive(active bool)
	Tag() string
	SetTag(tag string)
	Capabilities() Capability

	bind(owner *GameObject)
}

// Renderable 具备 CapRender 能力的组件实现此接口
type Renderable interface {
	Component
	SetParam(p render.Param)
}

// BaseComponent 提供组件的默认实现，具体组件嵌入它
type BaseComponent struct {
	owner    *GameObject
	inactive bool
	tag      string
}

func (c *BaseComponent) bind(owner *GameObject) { c.owner = owner }

func (c *BaseComponent) Init() {}
func (c *BaseComponent) Uninit() {}
func (c *BaseComponent) Update() {}
func (c *BaseComponent) Draw() {}

// Owner 返回所属实体（非拥有引用）
func (c *BaseComponent) Owner() *GameObject { return c.owner }

// Active 返回激活状态，默认为 true
func (c *BaseComponent) Active() bool { return !c.inactive }

// SetActive 设置激活状态
func (c *BaseComponent) SetActive(active bool) { c.inactive = !active }

// Tag 返回组件标签
func (c *BaseComponent) Tag() string { return c.tag }

// SetTag 设置组件标签
func (c *BaseComponent) SetTag(tag string) { c.tag = tag }

// Capabilities 默认没有任何能力
func (c *BaseComponent) Capabilities() Capability { return 0 }

// AddComponent 创建组件、绑定到实体、追加到组件序列末尾并立即 Init
//
// 返回的错误必须检查：owner 为 nil 或已释放时不会创建组件。
func AddComponent[T any, PT interface {
	*T
	Component
}](owner *GameObject) (PT, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if owner.released {
		return nil, ErrOwnerReleased
	}

	c := PT(new(T))
	c.bind(owner)
	owner.components = append(owner.components, c)
	c.Init()
	return c, nil
}

// GetComponent 返回第一个能转换为 T 的组件
//
// T 可以是具体组件指针类型，也可以是能力接口（如 Collider）。
// 传入 tag 时只考虑标签相同的组件。
func GetComponent[T any](owner *GameObject, tag ...string) (T, bool) {
	var zero T
	if owner == nil {
		return zero, false
	}
	for _, c := range owner.components {
		if len(tag) > 0 && c.Tag() != tag[0] {
			continue
		}
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// GetComponents 返回所有能转换为 T 的组件，保持组件序列顺序
func GetComponents[T any](owner *GameObject) []T {
	if owner == nil {
		return nil
	}
	var out []T
	for _, c := range owner.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
