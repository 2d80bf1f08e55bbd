package components

import (
	"testing"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRenderer_KnownKey(t *testing.T) {
	rec := render.NewRecorder("Player")
	g := newOwner(t, mgl32.Vec3{}, &ecs.Services{Renderer: rec})

	r, err := AddRenderer(g, render.KindBillboard, "Player")
	require.NoError(t, err)
	assert.Equal(t, render.KindBillboard, r.Kind())
	assert.Equal(t, "Player", r.Key())
	assert.Equal(t, ecs.CapRender, r.Capabilities())
}

func TestAddRenderer_MissingKey(t *testing.T) {
	rec := render.NewRecorder()
	g := newOwner(t, mgl32.Vec3{}, &ecs.Services{Renderer: rec})

	r, err := AddRenderer(g, render.KindModel, "Ghost")
	assert.ErrorIs(t, err, render.ErrAssetNotFound)
	require.NotNil(t, r)
	assert.Equal(t, "", r.Key())

	// 没有资源键的组件不会提交绘制
	g.Draw()
	assert.Empty(t, rec.Submissions)
}

func TestAddRenderer_NoRendererService(t *testing.T) {
	g := newOwner(t, mgl32.Vec3{}, nil)
	_, err := AddRenderer(g, render.KindSprite, "Fade")
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestRenderer_DrawUsesOwnerParam(t *testing.T) {
	rec := render.NewRecorder("Field")
	g := newOwner(t, mgl32.Vec3{0, -10, 0}, &ecs.Services{Renderer: rec})
	g.Param.Size = mgl32.Vec3{100, 100, 1}

	r, err := AddRenderer(g, render.KindSprite3D, "Field")
	require.NoError(t, err)

	g.Draw()
	require.Len(t, rec.Submissions, 1)
	sub := rec.Submissions[0]
	assert.Equal(t, render.KindSprite3D, sub.Kind)
	assert.Equal(t, "Field", sub.Key)
	assert.Equal(t, mgl32.Vec3{0, -10, 0}, sub.Param.Pos)
	assert.Equal(t, mgl32.Vec3{100, 100, 1}, sub.Param.Size)
	assert.Equal(t, g.Param, r.Param())

	r.SetActive(false)
	g.Draw()
	assert.Len(t, rec.Submissions, 1)
}
