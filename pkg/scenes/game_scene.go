package scenes

import (
	"fmt"

	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/entities"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/systems"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// 过渡遮罩的资源键和默认时长
const (
	FadeAsset         = "Fade"
	DefaultFadeFrames = 30
)

// GameSceneOptions 创建游戏场景所需的依赖
type GameSceneOptions struct {
	Name     string
	Services ecs.Services
	Debug    game.DebugService
	Layout   *config.SceneLayout
	Player   config.PlayerConfig
	Camera   *systems.CameraSystem

	// FadeFrames 淡入淡出帧数，<= 0 时使用 DefaultFadeFrames
	FadeFrames int
	// OnClear 场景中的敌人全部被消灭时调用一次
	OnClear func()
}

// GameScene 按布局生成实体的 3D 场景
//
// 相机跟随第一个 Player；布局中的敌人全部消灭后触发 OnClear。
type GameScene struct {
	*game.BaseScene

	opts       GameSceneOptions
	transition *entities.Transition
	enemies    int
	cleared    bool
}

// NewGameScene 创建场景（实体在 Init 中生成）
func NewGameScene(opts GameSceneOptions) *GameScene {
	if opts.FadeFrames <= 0 {
		opts.FadeFrames = DefaultFadeFrames
	}
	if opts.Camera != nil {
		opts.Services.Camera = opts.Camera
	}
	return &GameScene{
		BaseScene: game.NewBaseScene(opts.Name, opts.Services, opts.Debug),
		opts:      opts,
	}
}

// Init 生成布局中的实体、过渡遮罩，并让相机对准玩家
func (s *GameScene) Init() error {
	if s.opts.Layout == nil {
		return fmt.Errorf("scene %s: no layout", s.Name())
	}
	for _, spec := range s.opts.Layout.Entities {
		if _, err := entities.Spawn(s.BaseScene, spec, s.opts.Player); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name(), err)
		}
		if spec.Kind == config.KindEnemy {
			s.enemies++
		}
	}

	tr, err := game.AddEntityFunc(s.BaseScene, ecs.TagUI, "Transition", func(t *entities.Transition) {
		t.Asset = FadeAsset
		t.OnFade = s.SetFade
	})
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name(), err)
	}
	s.transition = tr

	if cam := s.opts.Camera; cam != nil {
		cam.SetTarget(s.playerPosition)
		cam.Snap()
	}
	s.Logger().Info("scene initialized",
		zap.Int("entities", s.EntityCount()),
		zap.Int("enemies", s.enemies))

	s.FadeIn(s.opts.FadeFrames, nil)
	return nil
}

// Uninit 释放所有实体并解除相机目标
func (s *GameScene) Uninit() {
	if cam := s.opts.Camera; cam != nil {
		cam.SetTarget(nil)
	}
	s.transition = nil
	s.BaseScene.Uninit()
}

// Update 执行一帧，并检查是否已消灭全部敌人
func (s *GameScene) Update() {
	s.BaseScene.Update()

	if s.cleared || s.enemies == 0 {
		return
	}
	if _, ok := game.GetFirstOfType[*entities.Enemy](s.BaseScene); ok {
		return
	}
	s.cleared = true
	s.Logger().Info("all enemies defeated", zap.Uint64("frame", s.Frame()))
	if s.opts.OnClear != nil {
		s.opts.OnClear()
	}
}

// Draw 实现 game.Scene（屏幕由渲染器在帧开始时绑定）
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.BaseScene.Draw()
}

// FadeIn 实现 game.Fader
func (s *GameScene) FadeIn(frames int, done func()) {
	if s.transition == nil {
		if done != nil {
			done()
		}
		return
	}
	s.transition.FadeIn(frames, done)
}

// FadeOut 实现 game.Fader
func (s *GameScene) FadeOut(frames int, done func()) {
	if s.transition == nil {
		if done != nil {
			done()
		}
		return
	}
	s.transition.FadeOut(frames, done)
}

// Cleared 敌人是否已全部消灭
func (s *GameScene) Cleared() bool { return s.cleared }

func (s *GameScene) playerPosition() (mgl32.Vec3, bool) {
	p, ok := game.GetFirstOfType[*entities.Player](s.BaseScene)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return p.Param.Pos, true
}
