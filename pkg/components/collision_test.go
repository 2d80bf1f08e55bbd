package components

import (
	"math"
	"testing"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOwner(t *testing.T, pos mgl32.Vec3, svc *ecs.Services) *ecs.GameObject {
	t.Helper()
	g := &ecs.GameObject{}
	require.NoError(t, ecs.Attach(g, ecs.ObjectID{Name: "Box"}, 1, svc))
	g.Param.Pos = pos
	return g
}

func addBox(t *testing.T, g *ecs.GameObject, size mgl32.Vec3) *CollisionOBB {
	t.Helper()
	c, err := ecs.AddComponent[CollisionOBB](g)
	require.NoError(t, err)
	c.SetSize(size)
	return c
}

func assertHit(t *testing.T, want bool, a, b *CollisionOBB) {
	t.Helper()
	assert.Equal(t, want, a.IsHit(b), "a.IsHit(b)")
	assert.Equal(t, want, b.IsHit(a), "b.IsHit(a)")
}

func TestCollisionOBB_Defaults(t *testing.T) {
	c := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, c.Info().HalfSize)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, c.Size())
	assert.Equal(t, ecs.CapCollision, c.Capabilities())

	c.SetCenter(mgl32.Vec3{0, 1, 0})
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Center())
	c.SetInfo(ObbInfo{HalfSize: mgl32.Vec3{2, 2, 2}})
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, c.Size())
}

func TestCollisionOBB_OverlapAtOrigin(t *testing.T) {
	a := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{1, 1, 1})
	b := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{1, 1, 1})
	assertHit(t, true, a, b)
}

func TestCollisionOBB_SeparatedAlongX(t *testing.T) {
	a := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{2, 2, 2})
	b := addBox(t, newOwner(t, mgl32.Vec3{5, 0, 0}, nil), mgl32.Vec3{2, 2, 2})
	assertHit(t, false, a, b)
}

func TestCollisionOBB_SeparatedByLocalCenter(t *testing.T) {
	a := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{2, 2, 2})
	b := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{2, 2, 2})
	b.SetCenter(mgl32.Vec3{5, 0, 0})
	assertHit(t, false, a, b)
}

func TestCollisionOBB_TouchingCountsAsHit(t *testing.T) {
	a := addBox(t, newOwner(t, mgl32.Vec3{}, nil), mgl32.Vec3{2, 2, 2})
	b := addBox(t, newOwner(t, mgl32.Vec3{2, 0, 0}, nil), mgl32.Vec3{2, 2, 2})
	assertHit(t, true, a, b)
}

func TestCollisionOBB_RotationSeparates(t *testing.T) {
	// A 绕 Y 旋转 45°；轴对齐包围盒会重叠，但 A 的局部 Z 轴把两者分开
	ownerA := newOwner(t, mgl32.Vec3{}, nil)
	ownerA.Param.Rotate = mgl32.Vec3{0, math.Pi / 4, 0}
	a := addBox(t, ownerA, mgl32.Vec3{2, 2, 2})
	b := addBox(t, newOwner(t, mgl32.Vec3{1.5, 0, 1.5}, nil), mgl32.Vec3{1, 1, 1})
	assertHit(t, false, a, b)

	// 不旋转时同样位置相交
	ownerA.Param.Rotate = mgl32.Vec3{}
	assertHit(t, true, a, b)
}

func TestCollisionOBB_OwnerScaleEnlargesBox(t *testing.T) {
	ownerA := newOwner(t, mgl32.Vec3{}, nil)
	a := addBox(t, ownerA, mgl32.Vec3{1, 1, 1})
	b := addBox(t, newOwner(t, mgl32.Vec3{2.4, 0, 0}, nil), mgl32.Vec3{1, 1, 1})
	assertHit(t, false, a, b)

	ownerA.Param.Size = mgl32.Vec3{4, 1, 1}
	assertHit(t, true, a, b)
}

func TestSeparated_DegenerateAxisNeverSeparates(t *testing.T) {
	// 平行轴的叉积为零向量，归一化得到 NaN
	axis := mgl32.Vec3{1, 0, 0}.Cross(mgl32.Vec3{2, 0, 0}).Normalize()
	var l [6]mgl32.Vec3
	assert.False(t, separated(axis, l, mgl32.Vec3{100, 0, 0}))
}

type sphereCollider struct{ ecs.BaseComponent }

func (s *sphereCollider) Capabilities() ecs.Capability { return ecs.CapCollision }
func (s *sphereCollider) IsHit(other ecs.Collider) bool { return true }

func TestCollisionOBB_OtherShapeIsNoHit(t *testing.T) {
	g := newOwner(t, mgl32.Vec3{}, nil)
	a := addBox(t, g, mgl32.Vec3{1, 1, 1})
	s, err := ecs.AddComponent[sphereCollider](g)
	require.NoError(t, err)
	assert.False(t, a.IsHit(s))
}

func TestCollisionOBB_DrawWireframe(t *testing.T) {
	rec := render.NewRecorder()
	g := newOwner(t, mgl32.Vec3{10, 0, 0}, &ecs.Services{Renderer: rec})
	c := addBox(t, g, mgl32.Vec3{2, 2, 2})

	corners := c.Corners()
	assert.Equal(t, mgl32.Vec3{9, 1, -1}, corners[0])
	assert.Equal(t, mgl32.Vec3{11, -1, 1}, corners[7])

	c.Draw()
	require.Len(t, rec.Lines, 12)
	for _, l := range rec.Lines {
		assert.Equal(t, DebugLineColor, l.Color)
	}

	rec.Reset()
	c.SetActive(false)
	c.Draw()
	assert.Empty(t, rec.Lines)
}

func TestCollisionOBB_NotDrawnByOwner(t *testing.T) {
	rec := render.NewRecorder()
	g := newOwner(t, mgl32.Vec3{}, &ecs.Services{Renderer: rec})
	addBox(t, g, mgl32.Vec3{1, 1, 1})
	g.Draw()
	assert.Empty(t, rec.Lines)
}
