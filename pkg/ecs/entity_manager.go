package ecs

// EntityID 是实体的句柄
//
// 低 32 位为槽位下标 +1，高 32 位为代数（generation）。
// 0 保留为无效 ID。槽位被释放后代数递增，旧句柄随即失效，
// 因此在 Destroy() 与清扫之间持有的句柄不会指向被复用的新实体。
type EntityID uint64

// InvalidEntityID 无效句柄
const InvalidEntityID EntityID = 0

func makeEntityID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(index+1))
}

// Index 返回槽位下标，无效 ID 返回 -1
func (id EntityID) Index() int {
	return int(uint32(id)) - 1
}

// Generation 返回代数
func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

type entitySlot struct {
	obj  Object
	gen  uint32
	used bool
}

// EntityManager 持有场景内所有实体的槽位表（arena）
//
// 实体的生命周期由场景决定：CreateEntity 在 AddEntity 中调用，
// ReleaseEntity 只在场景帧末清扫时调用。
type EntityManager struct {
	slots []entitySlot
	free  []uint32 // 可复用的槽位下标
	live  int
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		slots: make([]entitySlot, 0, 64),
		free:  make([]uint32, 0, 16),
	}
}

// CreateEntity 为实体分配槽位并返回句柄
func (em *EntityManager) CreateEntity(obj Object) EntityID {
	var index uint32
	if n := len(em.free); n > 0 {
		index = em.free[n-1]
		em.free = em.free[:n-1]
	} else {
		index = uint32(len(em.slots))
		em.slots = append(em.slots, entitySlot{gen: 1})
	}

	slot := &em.slots[index]
	slot.obj = obj
	slot.used = true
	em.live++
	return makeEntityID(index, slot.gen)
}

// GetEntity 解析句柄，句柄失效时返回 false
func (em *EntityManager) GetEntity(id EntityID) (Object, bool) {
	slot := em.slot(id)
	if slot == nil {
		return nil, false
	}
	return slot.obj, true
}

// IsAlive 检查句柄是否仍然有效
func (em *EntityManager) IsAlive(id EntityID) bool {
	return em.slot(id) != nil
}

// ReleaseEntity 释放槽位（代数递增），返回是否真的释放了
func (em *EntityManager) ReleaseEntity(id EntityID) bool {
	slot := em.slot(id)
	if slot == nil {
		return false
	}
	slot.obj = nil
	slot.used = false
	slot.gen++
	em.free = append(em.free, uint32(id.Index()))
	em.live--
	return true
}

// Count 返回存活实体数量
func (em *EntityManager) Count() int {
	return em.live
}

// Clear 释放所有槽位
func (em *EntityManager) Clear() {
	for i := range em.slots {
		if em.slots[i].used {
			em.ReleaseEntity(makeEntityID(uint32(i), em.slots[i].gen))
		}
	}
}

func (em *EntityManager) slot(id EntityID) *entitySlot {
	index := id.Index()
	if index < 0 || index >= len(em.slots) {
		return nil
	}
	slot := &em.slots[index]
	if !slot.used || slot.gen != id.Generation() {
		return nil
	}
	return slot
}
