package app

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/entities"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/scenes"
	"github.com/decker502/skillaction/pkg/systems"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testManifest = `
version: "1.0"
groups:
  game:
    textures:
      - id: Field
        color: [0.3, 0.6, 0.3, 1]
      - id: Player
        color: [0.2, 0.4, 0.9, 1]
      - id: Fade
        color: [0, 0, 0, 1]
      - id: EnemySkin
        color: [0.8, 0.2, 0.2, 1]
    models:
      - id: Enemy
        shape: cube
        texture: EnemySkin
`

const testLayout = `
entities:
  - kind: field
    name: Field
    asset: Field
    size: [20, 20, 1]
    rotation: [90, 0, 0]
  - kind: player
    name: Player
    asset: Player
    position: [0, 0.5, 0]
  - kind: enemy
    name: Enemy
    asset: Enemy
    position: [%s, 0.5, 0]
    script: idle
`

const idleScript = `
idle = {}
function idle.update(self)
end
`

func newTestApp(t *testing.T, enemyX string, mutate func(*config.EngineConfig)) (*App, *utils.FakeInput) {
	t.Helper()
	fsys := fstest.MapFS{
		"assets/manifest.yaml": {Data: []byte(testManifest)},
		"config/scene.yaml":    {Data: []byte(fmt.Sprintf(testLayout, enemyX))},
		"scripts/idle.lua":     {Data: []byte(idleScript)},
	}
	cfg := config.Default()
	cfg.Scene.FadeFrames = 2
	if mutate != nil {
		mutate(cfg)
	}
	input := utils.NewFakeInput()
	a, err := NewApp(context.Background(), Config{
		Engine: cfg,
		FS:     fsys,
		Logger: zaptest.NewLogger(t),
		Input:  input,
	})
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a, input
}

func TestNewApp_StartsGameScene(t *testing.T) {
	a, _ := newTestApp(t, "8", nil)

	w, h := a.Layout(100, 100)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
	assert.Nil(t, a.GetSceneManager().GetCurrentScene(), "scene switch is deferred to the first update")

	require.NoError(t, a.Update())
	s, ok := a.GetSceneManager().GetCurrentScene().(*scenes.GameScene)
	require.True(t, ok)
	assert.Equal(t, "game", a.GetSceneManager().CurrentName())

	_, ok = game.GetFirstOfType[*entities.Player](s.BaseScene)
	assert.True(t, ok)
	_, ok = game.GetFirstOfType[*entities.Enemy](s.BaseScene)
	assert.True(t, ok)
	assert.Equal(t, "Player", s.GetEntityByName("Player").Base().ID().Name)
}

func TestNewApp_Errors(t *testing.T) {
	_, err := NewApp(context.Background(), Config{})
	assert.Error(t, err, "engine config is required")

	_, err = NewApp(context.Background(), Config{Engine: config.Default(), FS: fstest.MapFS{}})
	assert.Error(t, err, "manifest is missing")

	cfg := config.Default()
	cfg.Scene.Start = "menu"
	_, err = NewApp(context.Background(), Config{
		Engine: cfg,
		FS: fstest.MapFS{
			"assets/manifest.yaml": {Data: []byte(testManifest)},
			"config/scene.yaml":    {Data: []byte("entities: []\n")},
		},
		Input: utils.NewFakeInput(),
	})
	assert.ErrorIs(t, err, game.ErrUnknownScene)
}

func TestApp_RestartsAfterClear(t *testing.T) {
	a, _ := newTestApp(t, "0.5", nil)

	// 第 1 帧：进入场景，敌人与玩家重叠被消灭，开始淡出
	require.NoError(t, a.Update())
	first := a.GetSceneManager().GetCurrentScene().(*scenes.GameScene)
	assert.True(t, first.Cleared())

	// 第 2、3 帧：淡出结束，请求切换
	require.NoError(t, a.Update())
	require.NoError(t, a.Update())
	assert.Same(t, first, a.GetSceneManager().GetCurrentScene())

	// 第 4 帧：新的场景实例
	require.NoError(t, a.Update())
	second, ok := a.GetSceneManager().GetCurrentScene().(*scenes.GameScene)
	require.True(t, ok)
	assert.NotSame(t, first, second)
	assert.Equal(t, uint64(1), second.Frame())
	assert.Equal(t, 0, first.EntityCount(), "old scene released its entities")
}

func TestApp_PauseAndQuit(t *testing.T) {
	a, input := newTestApp(t, "8", func(c *config.EngineConfig) {
		c.Debug.StartPaused = true
	})
	require.NoError(t, a.Update())
	s := a.GetSceneManager().GetCurrentScene().(*scenes.GameScene)
	assert.True(t, a.Debug().Paused())
	assert.Equal(t, uint64(0), s.Frame(), "paused scene does not advance")

	input.JustPressed[systems.KeyStep] = true
	require.NoError(t, a.Update())
	input.JustPressed[systems.KeyStep] = false
	assert.Equal(t, uint64(1), s.Frame(), "single step")

	input.Pressed[ebiten.KeyDelete] = true
	input.JustPressed[ebiten.KeyEscape] = true
	assert.ErrorIs(t, a.Update(), ebiten.Termination)
}

func TestApp_DebugDefaultsFromConfig(t *testing.T) {
	a, _ := newTestApp(t, "8", func(c *config.EngineConfig) {
		c.Debug.ShowCollision = true
	})
	assert.True(t, a.Debug().CollisionVisible())
	assert.Equal(t, systems.CameraGame, a.Camera().Kind())
}
