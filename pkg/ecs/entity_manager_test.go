package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	a := &testObject{}
	b := &testObject{}
	id1 := em.CreateEntity(a)
	id2 := em.CreateEntity(b)

	// 句柄唯一且非 0
	assert.NotEqual(t, id1, id2)
	assert.NotEqual(t, InvalidEntityID, id1)
	assert.Equal(t, 0, id1.Index())
	assert.Equal(t, 1, id2.Index())
	assert.Equal(t, 2, em.Count())

	got, ok := em.GetEntity(id1)
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestReleaseEntity_InvalidatesHandle(t *testing.T) {
	em := NewEntityManager()
	old := em.CreateEntity(&testObject{})

	require.True(t, em.ReleaseEntity(old))
	assert.False(t, em.ReleaseEntity(old), "double release must be a no-op")
	assert.False(t, em.IsAlive(old))

	// 槽位被复用，但旧句柄不能解析到新实体
	fresh := &testObject{}
	id := em.CreateEntity(fresh)
	assert.Equal(t, old.Index(), id.Index())
	assert.NotEqual(t, old.Generation(), id.Generation())

	_, ok := em.GetEntity(old)
	assert.False(t, ok)
	got, ok := em.GetEntity(id)
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestGetEntity_InvalidID(t *testing.T) {
	em := NewEntityManager()
	_, ok := em.GetEntity(InvalidEntityID)
	assert.False(t, ok)
	_, ok = em.GetEntity(makeEntityID(42, 1))
	assert.False(t, ok)
}

func TestEntityManagerClear(t *testing.T) {
	em := NewEntityManager()
	ids := []EntityID{
		em.CreateEntity(&testObject{}),
		em.CreateEntity(&testObject{}),
		em.CreateEntity(&testObject{}),
	}
	em.Clear()
	assert.Equal(t, 0, em.Count())
	for _, id := range ids {
		assert.False(t, em.IsAlive(id))
	}
}
