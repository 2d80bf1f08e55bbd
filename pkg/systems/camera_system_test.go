package systems

import (
	"testing"

	"github.com/decker502/skillaction/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v", i, got)
	}
}

func TestCameraSystem_DefaultPose(t *testing.T) {
	cs := NewCameraSystem(nil, 14.1421356, 45, 1, 0.2)
	assert.Equal(t, CameraGame, cs.Kind())
	assertVecNear(t, mgl32.Vec3{0, 10, -10}, cs.Active().Pos)
	f := cs.Forward()
	assert.InDelta(t, 0, f.X(), 1e-5)
	assert.Less(t, f.Y(), float32(0))
	assert.Greater(t, f.Z(), float32(0))
}

func TestCameraSystem_FollowsTarget(t *testing.T) {
	cs := NewCameraSystem(nil, 10, 90, 0.5, 0.2)
	target := mgl32.Vec3{4, 0, 0}
	cs.SetTarget(func() (mgl32.Vec3, bool) { return target, true })

	cs.Update()
	assertVecNear(t, mgl32.Vec3{2, 0, 0}, cs.Active().Look)
	cs.Update()
	assertVecNear(t, mgl32.Vec3{3, 0, 0}, cs.Active().Look)

	cs.Snap()
	assertVecNear(t, target, cs.Active().Look)

	// 目标不可用时保持不动
	cs.SetTarget(func() (mgl32.Vec3, bool) { return mgl32.Vec3{}, false })
	before := cs.Active().Pos
	cs.Update()
	assertVecNear(t, before, cs.Active().Pos)
}

func TestCameraSystem_OrbitWithArrows(t *testing.T) {
	in := utils.NewFakeInput()
	cs := NewCameraSystem(in, 10, 45, 1, 0.2)
	start := cs.Active().Pos

	in.Pressed[ebiten.KeyArrowRight] = true
	cs.Update()
	assert.NotEqual(t, start, cs.Active().Pos)
	assert.InDelta(t, 10, cs.Active().Pos.Len(), 1e-3, "orbit keeps the radius")
}

func TestCameraSystem_ToggleAndFly(t *testing.T) {
	in := utils.NewFakeInput()
	cs := NewCameraSystem(in, 14.1421356, 45, 1, 0.5)
	gamePos := cs.Active().Pos

	cs.Toggle()
	assert.Equal(t, CameraDebug, cs.Kind())
	assert.Equal(t, "debug", cs.Kind().String())
	assertVecNear(t, gamePos, cs.Active().Pos)

	in.Pressed[ebiten.KeyI] = true
	cs.Update()
	assertVecNear(t, gamePos.Add(mgl32.Vec3{0, 0, 0.5}), cs.Active().Pos)
	in.Pressed[ebiten.KeyI] = false

	in.Pressed[ebiten.KeyO] = true
	cs.Update()
	assertVecNear(t, gamePos.Add(mgl32.Vec3{0, 0.5, 0.5}), cs.Active().Pos)

	cs.Toggle()
	assert.Equal(t, CameraGame, cs.Kind())
	assertVecNear(t, gamePos, cs.Active().Pos)
	assert.Equal(t, cs.Active().View(), cs.View())
}
