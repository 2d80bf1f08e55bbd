package entities

import (
	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
)

// WallColliderTag 墙体碰撞体标签
const WallColliderTag = "wall"

// Wall 静态障碍物：模型 + OBB
type Wall struct {
	ecs.GameObject

	// Asset 模型资源键，为空时只有碰撞体（不可见的墙）
	Asset string
	// ColliderSize 碰撞盒尺寸（局部空间，再乘以 Param.Size）
	ColliderSize mgl32.Vec3

	box *components.CollisionOBB
}

func (w *Wall) Init() error {
	if w.Asset != "" {
		if _, err := components.AddRenderer(w.Base(), render.KindModel, w.Asset); err != nil {
			return err
		}
	}
	box, err := ecs.AddComponent[components.CollisionOBB](w.Base())
	if err != nil {
		return err
	}
	box.SetTag(WallColliderTag)
	if w.ColliderSize != (mgl32.Vec3{}) {
		box.SetSize(w.ColliderSize)
	}
	w.box = box
	return nil
}

// Box 碰撞体
func (w *Wall) Box() *components.CollisionOBB { return w.box }
