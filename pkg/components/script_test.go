package components

import (
	"testing"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/scripting"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const driftScript = `
drift = {}
function drift.init(self)
  self.started = self:name()
end
function drift.update(self)
  local x, y, z = self:pos()
  self:set_pos(x + 0.5, y, z)
end
function drift.on_hit(self)
  self:destroy()
end
crash = { update = function(self) error("bad update") end }
`

func newScriptOwner(t *testing.T) *ecs.GameObject {
	t.Helper()
	engine := scripting.NewEngine(zaptest.NewLogger(t))
	t.Cleanup(engine.Close)
	require.NoError(t, engine.LoadString("drift", driftScript))
	return newOwner(t, mgl32.Vec3{}, &ecs.Services{Scripts: engine, Logger: zaptest.NewLogger(t)})
}

func TestScript_InitAndUpdate(t *testing.T) {
	g := newScriptOwner(t)
	s, err := AddScript(g, "drift")
	require.NoError(t, err)
	assert.Equal(t, "drift", s.Behavior())
	assert.Equal(t, ecs.CapScript, s.Capabilities())
	assert.Equal(t, "Box", s.Instance().Field("started"))

	g.Update()
	g.Update()
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, g.Param.Pos)

	require.NoError(t, s.Call("on_hit"))
	assert.True(t, g.IsDestroy())
}

func TestScript_RuntimeErrorDisables(t *testing.T) {
	g := newScriptOwner(t)
	s, err := AddScript(g, "crash")
	require.NoError(t, err)

	g.Update()
	assert.False(t, s.Active())
}

func TestScript_UnknownBehavior(t *testing.T) {
	g := newScriptOwner(t)
	_, err := AddScript(g, "missing")
	assert.ErrorIs(t, err, scripting.ErrBehaviorNotFound)
}

func TestScript_NoEngine(t *testing.T) {
	g := newOwner(t, mgl32.Vec3{}, nil)
	s, err := AddScript(g, "drift")
	assert.ErrorIs(t, err, ErrNoScriptEngine)
	require.NotNil(t, s)

	// 未绑定的脚本组件更新时什么也不做
	g.Update()
	assert.Equal(t, "", s.Behavior())
}
