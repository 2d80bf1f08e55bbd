package ecs

// Collider 碰撞体能力
//
// IsHit 是单侧方法，但结果对称：a.IsHit(b) == b.IsHit(a)。
// 只有 Active 的碰撞体参与场景的碰撞检测。
type Collider interface {
	Component
	IsHit(other Collider) bool
}
