package entities

import (
	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
)

// Field 地面：一张水平放置的 Sprite3D
//
// 地面的高度（Param.Pos.Y）同时作为点击移动的射线平面。
type Field struct {
	ecs.GameObject

	// Asset 纹理资源键，Init 前设置
	Asset string

	renderer *components.Renderer
}

// Init 添加 Sprite3D 渲染组件
// 地面从上方观察，关闭背面剔除。
func (f *Field) Init() error {
	r, err := components.AddRenderer(f.Base(), render.KindSprite3D, f.Asset)
	if err != nil {
		return err
	}
	f.renderer = r
	f.Param.Cull = false
	return nil
}

// Height 地面高度
func (f *Field) Height() float32 {
	return f.Param.Pos.Y()
}
