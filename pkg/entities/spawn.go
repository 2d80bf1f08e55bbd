package entities

import (
	"fmt"

	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/utils"
)

// GroundName 玩家点击移动使用的地面实体名
const GroundName = "Field"

// Spawn 按场景布局条目创建实体
//
// 参数：
//   - s: 目标场景
//   - spec: 布局条目（已通过 config.ParseSceneLayout 校验）
//   - player: 玩家移动参数
//
// 返回：
//   - ecs.Object: 创建的实体
//   - error: 标签无效、种类未知或实体 Init 失败
func Spawn(s *game.BaseScene, spec config.EntitySpec, player config.PlayerConfig) (ecs.Object, error) {
	tag, err := tagFor(spec)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case config.KindField:
		return spawnAs(s, tag, spec.Name, func(f *Field) {
			place(f.Base(), spec)
			f.Asset = spec.Asset
		})
	case config.KindPlayer:
		return spawnAs(s, tag, spec.Name, func(p *Player) {
			place(p.Base(), spec)
			p.Asset = spec.Asset
			p.Speed = player.Speed
			p.MoveFrames = player.MoveFrames
			if ease, ok := utils.EasingByName(player.Ease); ok {
				p.Ease = ease
			}
			p.ColliderSize = spec.ColliderSize()
			p.Ground = GroundName
		})
	case config.KindEnemy:
		return spawnAs(s, tag, spec.Name, func(e *Enemy) {
			place(e.Base(), spec)
			e.Asset = spec.Asset
			e.Script = spec.Script
			e.ColliderSize = spec.ColliderSize()
		})
	case config.KindWall:
		return spawnAs(s, tag, spec.Name, func(w *Wall) {
			place(w.Base(), spec)
			w.Asset = spec.Asset
			w.ColliderSize = spec.ColliderSize()
		})
	}
	return nil, fmt.Errorf("spawn %s: unknown kind %q", spec.Name, spec.Kind)
}

// spawnAs 失败时返回 nil 接口，而不是包着 nil 指针的接口
func spawnAs[T any, PT interface {
	*T
	ecs.Object
}](s *game.BaseScene, tag ecs.Tag, name string, setup func(PT)) (ecs.Object, error) {
	obj, err := game.AddEntityFunc[T, PT](s, tag, name, setup)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func tagFor(spec config.EntitySpec) (ecs.Tag, error) {
	if spec.Tag != "" {
		tag, ok := ecs.ParseTag(spec.Tag)
		if !ok {
			return ecs.TagNone, fmt.Errorf("spawn %s: %w: %q", spec.Name, game.ErrInvalidTag, spec.Tag)
		}
		return tag, nil
	}
	if spec.Kind == config.KindField {
		return ecs.TagField, nil
	}
	return ecs.TagGameObject, nil
}

func place(g *ecs.GameObject, spec config.EntitySpec) {
	g.Param.Pos = spec.Pos()
	g.Param.Size = spec.Scale()
	g.Param.Rotate = spec.Rotate()
	g.Param.Color = spec.Tint()
	g.OldPos = g.Param.Pos
}
