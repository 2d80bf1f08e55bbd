package ecs

import (
	"testing"

	"github.com/decker502/skillaction/pkg/render"
)

// testObject 测试用实体
type testObject struct {
	GameObject
	destroyed int
}

func (o *testObject) OnDestroy() { o.destroyed++ }

// lifecycle 记录组件生命周期调用，每个测试开始时重置
var lifecycle []string

// recorder 记录组件生命周期调用
// Init 在 AddComponent 内部调用，此时 name 尚未设置，记录为 "?.Init"
type recorder struct {
	BaseComponent
	name string
}

func (c *recorder) label() string {
	if c.name == "" {
		return "?"
	}
	return c.name
}

func (c *recorder) Init() { lifecycle = append(lifecycle, c.label()+".Init") }
func (c *recorder) Uninit() { lifecycle = append(lifecycle, c.label()+".Uninit") }
func (c *recorder) Update() { lifecycle = append(lifecycle, c.label()+".Update") }
func (c *recorder) Draw() { lifecycle = append(lifecycle, c.label()+".Draw") }

// renderProbe 渲染能力组件
type renderProbe struct {
	BaseComponent
	param render.Param
	draws int
}

func (c *renderProbe) Capabilities() Capability { return CapRender }
func (c *renderProbe) SetParam(p render.Param) { c.param = p }
func (c *renderProbe) Draw() { c.draws++ }

// probeCollider 碰撞能力组件
type probeCollider struct {
	BaseComponent
	draws int
}

func (c *probeCollider) Capabilities() Capability { return CapCollision }
func (c *probeCollider) IsHit(other Collider) bool { return false }
func (c *probeCollider) Draw() { c.draws++ }

func addRecorder(t *testing.T, g *GameObject, name string) *recorder {
	t.Helper()
	c, err := AddComponent[recorder](g)
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	c.name = name
	return c
}
