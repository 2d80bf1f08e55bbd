package ecs

import "github.com/go-gl/mathgl/mgl32"

// EaseFunc 缓动函数，输入/输出进度 ∈ [0, 1]
// 与 utils 包中的 Ease* 函数签名一致
type EaseFunc func(t float64) float64

// Lerp3 在 start 与 end 之间插值
//
// t >= duration 时钳制到 duration（直接返回 end，不会越过终点）；
// duration <= 0 视为已完成；ease 为 nil 时线性插值。
func Lerp3(start, end mgl32.Vec3, t, duration float32, ease EaseFunc) mgl32.Vec3 {
	if duration <= 0 || t >= duration {
		return end
	}
	if t < 0 {
		t = 0
	}
	r := t / duration
	if ease != nil {
		r = float32(ease(float64(r)))
	}
	return start.Add(end.Sub(start).Mul(r))
}
