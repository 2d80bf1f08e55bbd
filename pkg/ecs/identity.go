package ecs

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ObjectID 实体身份：名称 + 消歧下标
// 下标 = 创建时已存在的同名身份数量；创建后不可变
type ObjectID struct {
	Name  string
	Index int
}

// String 返回显示名：下标为 0 时只显示名称
func (id ObjectID) String() string {
	if id.Index == 0 {
		return id.Name
	}
	return id.Name + strconv.Itoa(id.Index)
}

type identityEntry struct {
	id     ObjectID
	handle EntityID
}

// nameBucket 同名身份（按插入顺序）
type nameBucket struct {
	name    string
	entries []identityEntry
}

// IdentityRegistry 身份表
//
// entries 保持插入顺序用于枚举；名称索引以 xxhash 分桶，
// 同一哈希下的不同名称链式存放。查找结果与按插入顺序线性扫描一致。
type IdentityRegistry struct {
	entries []identityEntry
	byName  map[uint64][]*nameBucket
}

// NewIdentityRegistry 创建空身份表
func NewIdentityRegistry() *IdentityRegistry {
	return &IdentityRegistry{
		byName: make(map[uint64][]*nameBucket),
	}
}

func (r *IdentityRegistry) bucket(name string, create bool) *nameBucket {
	h := xxhash.Sum64String(name)
	for _, b := range r.byName[h] {
		if b.name == name {
			return b
		}
	}
	if !create {
		return nil
	}
	b := &nameBucket{name: name}
	r.byName[h] = append(r.byName[h], b)
	return b
}

// Assign 为实体分配身份
func (r *IdentityRegistry) Assign(name string, handle EntityID) ObjectID {
	b := r.bucket(name, true)
	e := identityEntry{
		id:     ObjectID{Name: name, Index: len(b.entries)},
		handle: handle,
	}
	b.entries = append(b.entries, e)
	r.entries = append(r.entries, e)
	return e.id
}

// Remove 删除句柄对应的身份
func (r *IdentityRegistry) Remove(handle EntityID) bool {
	return r.RemoveIf(func(h EntityID) bool { return h == handle }) > 0
}

// RemoveIf 删除所有满足条件的身份，返回删除数量（保持剩余顺序）
func (r *IdentityRegistry) RemoveIf(pred func(handle EntityID) bool) int {
	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if pred(e.handle) {
			r.dropFromBucket(e)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = identityEntry{}
	}
	r.entries = kept
	return removed
}

func (r *IdentityRegistry) dropFromBucket(e identityEntry) {
	h := xxhash.Sum64String(e.id.Name)
	chain := r.byName[h]
	for bi, b := range chain {
		if b.name != e.id.Name {
			continue
		}
		for i, be := range b.entries {
			if be.handle == e.handle {
				b.entries = append(b.entries[:i], b.entries[i+1:]...)
				break
			}
		}
		if len(b.entries) == 0 {
			chain = append(chain[:bi], chain[bi+1:]...)
			if len(chain) == 0 {
				delete(r.byName, h)
			} else {
				r.byName[h] = chain
			}
		}
		return
	}
}

// Lookup 按完整身份查找句柄
func (r *IdentityRegistry) Lookup(id ObjectID) (EntityID, bool) {
	b := r.bucket(id.Name, false)
	if b == nil {
		return InvalidEntityID, false
	}
	for _, e := range b.entries {
		if e.id == id {
			return e.handle, true
		}
	}
	return InvalidEntityID, false
}

// LookupName 按名称查找，返回最早登记的那一个
func (r *IdentityRegistry) LookupName(name string) (EntityID, bool) {
	b := r.bucket(name, false)
	if b == nil || len(b.entries) == 0 {
		return InvalidEntityID, false
	}
	return b.entries[0].handle, true
}

// Count 当前同名身份数量
func (r *IdentityRegistry) Count(name string) int {
	b := r.bucket(name, false)
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// IDs 按插入顺序返回所有身份
func (r *IdentityRegistry) IDs() []ObjectID {
	ids := make([]ObjectID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Len 身份数量
func (r *IdentityRegistry) Len() int {
	return len(r.entries)
}

// Clear 清空
func (r *IdentityRegistry) Clear() {
	r.entries = nil
	r.byName = make(map[uint64][]*nameBucket)
}
