package systems

import (
	"testing"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type fakeHierarchy []ecs.ObjectID

func (f fakeHierarchy) IDs() []ecs.ObjectID { return f }

func newTestDebug(t *testing.T, enabled, paused bool) (*DebugSystem, *utils.FakeInput, *CameraSystem) {
	t.Helper()
	in := utils.NewFakeInput()
	cam := NewCameraSystem(in, 10, 45, 1, 0.2)
	settings := game.NewSettingsManager(nil, zaptest.NewLogger(t))
	return NewDebugSystem(in, settings, cam, enabled, paused, zaptest.NewLogger(t)), in, cam
}

func press(ds *DebugSystem, in *utils.FakeInput, key ebiten.Key) {
	in.JustPressed[key] = true
	ds.Update()
	in.Reset()
}

func TestDebugSystem_PauseAndStep(t *testing.T) {
	ds, in, _ := newTestDebug(t, true, false)
	ds.Update()
	assert.True(t, ds.UpdateEnabled())

	press(ds, in, KeyPause)
	assert.True(t, ds.Paused())
	assert.False(t, ds.UpdateEnabled())

	press(ds, in, KeyStep)
	assert.True(t, ds.UpdateEnabled(), "single step allows exactly one update")
	ds.Update()
	assert.False(t, ds.UpdateEnabled())

	press(ds, in, KeyPause)
	assert.True(t, ds.UpdateEnabled())
}

func TestDebugSystem_StartPaused(t *testing.T) {
	ds, _, _ := newTestDebug(t, true, true)
	assert.False(t, ds.UpdateEnabled())

	disabled, _, _ := newTestDebug(t, false, true)
	assert.True(t, disabled.UpdateEnabled(), "disabled debug UI never pauses")
}

func TestDebugSystem_Toggles(t *testing.T) {
	ds, in, cam := newTestDebug(t, true, false)
	assert.False(t, ds.CollisionVisible())

	press(ds, in, KeyCollision)
	assert.True(t, ds.CollisionVisible())

	press(ds, in, KeyCamera)
	assert.Equal(t, CameraDebug, cam.Kind())
	assert.True(t, ds.settings.GetSettings().DebugCamera)

	ds.SetHierarchySource(func() HierarchySource {
		return fakeHierarchy{{Name: "Player"}, {Name: "Enemy", Index: 1}}
	})
	assert.NotContains(t, ds.Overlay(), "Enemy1")
	press(ds, in, KeyHierarchy)
	assert.Contains(t, ds.Overlay(), "Player\n")
	assert.Contains(t, ds.Overlay(), "Enemy1\n")
}

func TestDebugSystem_DisabledIgnoresKeys(t *testing.T) {
	ds, in, _ := newTestDebug(t, false, false)
	ds.settings.GetSettings().ShowCollision = true
	press(ds, in, KeyPause)
	assert.False(t, ds.Paused())
	assert.False(t, ds.CollisionVisible())
	assert.Empty(t, ds.Overlay())
}

func TestDebugSystem_QuitCombo(t *testing.T) {
	ds, in, _ := newTestDebug(t, false, false)
	press(ds, in, ebiten.KeyEscape)
	assert.False(t, ds.QuitRequested())

	in.Pressed[ebiten.KeyDelete] = true
	press(ds, in, ebiten.KeyEscape)
	assert.True(t, ds.QuitRequested())
}

func TestDebugSystem_DrawWorld(t *testing.T) {
	ds, _, _ := newTestDebug(t, true, false)
	rec := render.NewRecorder()
	ds.DrawWorld(rec)
	assert.Len(t, rec.Lines, (2*gridHalfExtent+1)*2+3)

	ds.settings.GetSettings().ShowGrid = false
	rec.Reset()
	ds.DrawWorld(rec)
	assert.Empty(t, rec.Lines)
}
