package components

import (
	"errors"
	"fmt"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
)

// ErrNoRenderer 实体没有注入渲染服务，无法校验资源键
var ErrNoRenderer = errors.New("components: renderer service not available")

// Renderer 渲染组件
//
// 渲染种类是封闭集合（Billboard / Sprite3D / Sprite / Model），
// 组件只保存种类、资源键和参数块，真正的绘制由渲染服务按种类分派。
// 参数块每帧由所属实体在 Draw 前推送。
type Renderer struct {
	ecs.BaseComponent
	kind  render.Kind
	key   string
	param render.Param
}

// AddRenderer 添加渲染组件并设置种类与资源键
//
// 资源键未注册时返回 render.ErrAssetNotFound（组件已添加，但不会绘制）。
func AddRenderer(owner *ecs.GameObject, kind render.Kind, key string) (*Renderer, error) {
	r, err := ecs.AddComponent[Renderer](owner)
	if err != nil {
		return nil, err
	}
	r.kind = kind
	if err := r.SetKey(key); err != nil {
		return r, err
	}
	return r, nil
}

// Init 初始化默认参数块
func (r *Renderer) Init() {
	r.param = render.DefaultParam()
}

// Capabilities 渲染能力
func (r *Renderer) Capabilities() ecs.Capability { return ecs.CapRender }

// Kind 渲染种类
func (r *Renderer) Kind() render.Kind { return r.kind }

// SetKind 设置渲染种类
func (r *Renderer) SetKind(kind render.Kind) { r.kind = kind }

// Key 资源键
func (r *Renderer) Key() string { return r.key }

// SetKey 设置资源键，键必须已在渲染服务中注册
func (r *Renderer) SetKey(key string) error {
	owner := r.Owner()
	if owner == nil || owner.Services() == nil || owner.Services().Renderer == nil {
		return fmt.Errorf("set key %q: %w", key, ErrNoRenderer)
	}
	if !owner.Services().Renderer.HasAsset(key) {
		return fmt.Errorf("set key %q: %w", key, render.ErrAssetNotFound)
	}
	r.key = key
	return nil
}

// Param 当前参数块
func (r *Renderer) Param() render.Param { return r.param }

// SetParam 接收实体推送的参数块
func (r *Renderer) SetParam(p render.Param) { r.param = p }

// Draw 提交绘制
func (r *Renderer) Draw() {
	if r.key == "" {
		return
	}
	svc := r.Owner().Services()
	if svc == nil || svc.Renderer == nil {
		return
	}
	svc.Renderer.Submit(r.kind, r.key, r.param)
}
