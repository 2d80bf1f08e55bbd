package entities

import (
	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// EnemyColliderTag 敌人碰撞体标签
const EnemyColliderTag = "enemy"

// Enemy 敌人：模型 + OBB + 可选的 Lua 行为
// 被玩家碰到时销毁。
type Enemy struct {
	ecs.GameObject

	// 以下字段在 Init 前设置
	Asset        string
	Script       string
	ColliderSize mgl32.Vec3

	box    *components.CollisionOBB
	script *components.Script
}

func (e *Enemy) Init() error {
	if _, err := components.AddRenderer(e.Base(), render.KindModel, e.Asset); err != nil {
		return err
	}
	box, err := ecs.AddComponent[components.CollisionOBB](e.Base())
	if err != nil {
		return err
	}
	box.SetTag(EnemyColliderTag)
	if e.ColliderSize != (mgl32.Vec3{}) {
		box.SetSize(e.ColliderSize)
	}
	e.box = box

	if e.Script != "" {
		s, err := components.AddScript(e.Base(), e.Script)
		if err != nil {
			return err
		}
		e.script = s
	}
	return nil
}

func (e *Enemy) OnColliderHit(other ecs.Collider, thisTag string) {
	if _, ok := other.Owner().Self().(*Player); !ok {
		return
	}
	if e.script != nil {
		if err := e.script.Call("on_hit"); err != nil {
			e.Logger().Warn("script on_hit failed", zap.Error(err))
		}
	}
	e.Destroy()
}

func (e *Enemy) OnDestroy() {
	e.Logger().Info("enemy defeated")
}

// Box 碰撞体
func (e *Enemy) Box() *components.CollisionOBB { return e.box }

// ScriptComponent 脚本组件，没有配置脚本时为 nil
func (e *Enemy) ScriptComponent() *components.Script { return e.script }
