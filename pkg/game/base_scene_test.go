package game

import (
	"errors"
	"testing"

	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// boxEntity 带一个 OBB 的实体，记录命中和销毁钩子
type boxEntity struct {
	ecs.GameObject
	box       *components.CollisionOBB
	hits      []ecs.Collider
	hitTags   []string
	updates   int
	destroyed int
	uninits   int
}

func (b *boxEntity) Init() error {
	box, err := ecs.AddComponent[components.CollisionOBB](b.Base())
	if err != nil {
		return err
	}
	box.SetTag("body")
	b.box = box
	return nil
}

func (b *boxEntity) Update() {
	b.updates++
	b.GameObject.Update()
}

func (b *boxEntity) Uninit() {
	b.uninits++
	b.GameObject.Uninit()
}

func (b *boxEntity) OnColliderHit(other ecs.Collider, thisTag string) {
	b.hits = append(b.hits, other)
	b.hitTags = append(b.hitTags, thisTag)
}

func (b *boxEntity) OnDestroy() { b.destroyed++ }

// plainEntity 没有任何组件
type plainEntity struct {
	ecs.GameObject
	updates int
}

func (p *plainEntity) Update() { p.updates++ }

var errBoom = errors.New("boom")

type failingEntity struct {
	ecs.GameObject
}

func (f *failingEntity) Init() error { return errBoom }

// spawnerEntity 在第一次 Update 中生成一个 plainEntity
type spawnerEntity struct {
	ecs.GameObject
	scene   *BaseScene
	spawned *plainEntity
}

func (s *spawnerEntity) Update() {
	if s.spawned != nil {
		return
	}
	p, err := AddEntity[plainEntity](s.scene, ecs.TagGameObject, "Spawned")
	if err == nil {
		s.spawned = p
	}
}

// chainEntity 被销毁时连带销毁 next
type chainEntity struct {
	ecs.GameObject
	next      *chainEntity
	destroyed int
}

func (c *chainEntity) OnDestroy() {
	c.destroyed++
	if c.next != nil {
		c.next.Destroy()
	}
}

type fakeDebug struct {
	update    bool
	collision bool
}

func (f *fakeDebug) UpdateEnabled() bool    { return f.update }
func (f *fakeDebug) CollisionVisible() bool { return f.collision }

func newTestScene(t *testing.T) (*BaseScene, *render.Recorder, *fakeDebug) {
	t.Helper()
	rec := render.NewRecorder()
	dbg := &fakeDebug{update: true}
	s := NewBaseScene("test", ecs.Services{
		Renderer: rec,
		Camera:   render.NewCamera(),
		Logger:   zaptest.NewLogger(t),
	}, dbg)
	return s, rec, dbg
}

func addBoxEntity(t *testing.T, s *BaseScene, name string, pos mgl32.Vec3) *boxEntity {
	t.Helper()
	b, err := AddEntity[boxEntity](s, ecs.TagGameObject, name)
	require.NoError(t, err)
	b.Param.Pos = pos
	return b
}

func TestBaseScene_CollisionThenDestroy(t *testing.T) {
	s, _, _ := newTestScene(t)
	a := addBoxEntity(t, s, "A", mgl32.Vec3{})
	b := addBoxEntity(t, s, "B", mgl32.Vec3{0.5, 0, 0})

	s.Update()
	require.Len(t, a.hits, 1)
	require.Len(t, b.hits, 1)
	assert.Same(t, b.box, a.hits[0])
	assert.Same(t, a.box, b.hits[0])
	assert.Equal(t, []string{"body"}, a.hitTags)
	assert.Equal(t, []string{"body"}, b.hitTags)

	handle := a.Handle()
	a.Destroy()
	s.Update()

	assert.Equal(t, []ecs.Object{b}, s.Bucket(ecs.TagGameObject))
	assert.Equal(t, []ecs.Collider{b.box}, s.Colliders())
	assert.Nil(t, s.Resolve(handle))
	assert.Nil(t, s.GetEntityByName("A"))
	assert.Equal(t, 1, a.destroyed)
	assert.Equal(t, 1, a.uninits)
	assert.True(t, a.IsReleased())
	assert.Equal(t, 1, s.EntityCount())

	// 销毁帧内 Update 仍然访问待销毁实体
	assert.Equal(t, 2, a.updates)
	// 第二帧 a 已待销毁，但碰撞检测照常进行
	assert.Len(t, b.hits, 2)
}

func TestBaseScene_SameNameIdentities(t *testing.T) {
	s, _, _ := newTestScene(t)
	e0 := addBoxEntity(t, s, "Enemy", mgl32.Vec3{0, 0, 0})
	e1 := addBoxEntity(t, s, "Enemy", mgl32.Vec3{10, 0, 0})

	assert.Equal(t, ecs.ObjectID{Name: "Enemy", Index: 0}, e0.ID())
	assert.Equal(t, ecs.ObjectID{Name: "Enemy", Index: 1}, e1.ID())
	assert.Equal(t, "Enemy1", e1.ID().String())
	assert.Same(t, e1, s.GetEntity(ecs.ObjectID{Name: "Enemy", Index: 1}))
	assert.Same(t, e0, s.GetEntityByName("Enemy"))
	assert.Equal(t, []ecs.ObjectID{e0.ID(), e1.ID()}, s.IDs())
}

func TestBaseScene_InactiveCollidersSkipped(t *testing.T) {
	s, _, _ := newTestScene(t)
	a := addBoxEntity(t, s, "A", mgl32.Vec3{})
	b := addBoxEntity(t, s, "B", mgl32.Vec3{})
	c := addBoxEntity(t, s, "C", mgl32.Vec3{})

	b.box.SetActive(false)
	s.Update()
	assert.Len(t, a.hits, 1)
	assert.Empty(t, b.hits)
	assert.Len(t, c.hits, 1)

	a.box.SetActive(false)
	s.Update()
	assert.Len(t, a.hits, 1)
	assert.Len(t, c.hits, 1)
}

func TestBaseScene_ThreeOverlappingPairs(t *testing.T) {
	s, _, _ := newTestScene(t)
	a := addBoxEntity(t, s, "A", mgl32.Vec3{})
	b := addBoxEntity(t, s, "B", mgl32.Vec3{})
	c := addBoxEntity(t, s, "C", mgl32.Vec3{})

	s.Update()
	assert.Len(t, a.hits, 2)
	assert.Len(t, b.hits, 2)
	assert.Len(t, c.hits, 2)
}

func TestBaseScene_SpawnedEntityNotVisitedSameTick(t *testing.T) {
	s, _, _ := newTestScene(t)
	sp, err := AddEntity[spawnerEntity](s, ecs.TagGameObject, "Spawner")
	require.NoError(t, err)
	sp.scene = s

	s.Update()
	require.NotNil(t, sp.spawned)
	assert.Equal(t, 0, sp.spawned.updates)
	assert.Len(t, s.Bucket(ecs.TagGameObject), 2)

	s.Update()
	assert.Equal(t, 1, sp.spawned.updates)
}

func TestBaseScene_InitFailureIsSwept(t *testing.T) {
	s, _, _ := newTestScene(t)
	f, err := AddEntity[failingEntity](s, ecs.TagGameObject, "Broken")
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, f)
	assert.Equal(t, 1, s.EntityCount())

	s.Update()
	assert.Equal(t, 0, s.EntityCount())
	assert.Empty(t, s.Bucket(ecs.TagGameObject))
	assert.Nil(t, s.GetEntityByName("Broken"))
}

func TestBaseScene_DestroyChainSweptSameFrame(t *testing.T) {
	s, _, _ := newTestScene(t)
	first, err := AddEntity[chainEntity](s, ecs.TagGameObject, "First")
	require.NoError(t, err)
	second, err := AddEntity[chainEntity](s, ecs.TagField, "Second")
	require.NoError(t, err)
	first.next = second

	first.Destroy()
	s.Update()

	assert.Equal(t, 1, first.destroyed)
	assert.Equal(t, 1, second.destroyed)
	assert.Equal(t, 0, s.EntityCount())
	assert.Empty(t, s.IDs())
}

func TestBaseScene_Draw(t *testing.T) {
	s, rec, dbg := newTestScene(t)
	addBoxEntity(t, s, "A", mgl32.Vec3{})

	s.Draw()
	assert.Equal(t, s.Services().Camera.View(), rec.View)
	assert.Empty(t, rec.Lines)
	assert.Equal(t, 1, rec.Flushed)

	dbg.collision = true
	s.Draw()
	assert.Len(t, rec.Lines, 12)
	assert.Equal(t, 2, rec.Flushed)
}

func TestBaseScene_InvalidTag(t *testing.T) {
	s, _, _ := newTestScene(t)
	_, err := AddEntity[plainEntity](s, ecs.TagMax, "Nope")
	assert.ErrorIs(t, err, ErrInvalidTag)
	assert.Equal(t, 0, s.EntityCount())
}

func TestBaseScene_Uninit(t *testing.T) {
	s, _, _ := newTestScene(t)
	a := addBoxEntity(t, s, "A", mgl32.Vec3{})
	p, err := AddEntity[plainEntity](s, ecs.TagField, "P")
	require.NoError(t, err)

	s.Uninit()
	assert.Equal(t, 1, a.uninits)
	assert.Equal(t, 0, a.destroyed)
	assert.True(t, p.IsReleased())
	assert.Equal(t, 0, s.EntityCount())
	assert.Empty(t, s.Colliders())
	assert.Empty(t, s.IDs())
}

func TestBaseScene_FirstOfTypeAndWorld(t *testing.T) {
	s, _, _ := newTestScene(t)
	_, err := AddEntity[plainEntity](s, ecs.TagField, "Field")
	require.NoError(t, err)
	b := addBoxEntity(t, s, "Box", mgl32.Vec3{})

	got, ok := GetFirstOfType[*boxEntity](s)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = GetFirstOfType[*failingEntity](s)
	assert.False(t, ok)

	s.Update()
	w := b.Services().World
	require.NotNil(t, w)
	assert.Equal(t, uint64(1), w.Frame())
	assert.Same(t, b, w.GetEntityByName("Box"))
}
