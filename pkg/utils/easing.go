package utils

import (
	"math"
	"sort"
)

// 缓动函数：进度 t ∈ [0, 1] 映射到 [0, 1]（EaseOutBack 中途会越过 1）
// 签名与 ecs.EaseFunc 一致，可直接传给 GameObject.MoveTo。

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 前半段 4t³，后半段对称
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuart 1 - (1-t)⁴，点击移动的默认曲线
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// EaseOutQuint 1 - (1-t)⁵
func EaseOutQuint(t float64) float64 {
	return 1 - math.Pow(1-t, 5)
}

// backOvershoot EaseOutBack 的回弹幅度
const backOvershoot = 1.70158

// EaseOutBack 先越过终点再回到终点
func EaseOutBack(t float64) float64 {
	c3 := backOvershoot + 1
	return 1 + c3*math.Pow(t-1, 3) + backOvershoot*math.Pow(t-1, 2)
}

var easings = map[string]func(float64) float64{
	"linear":       EaseLinear,
	"out_quad":     EaseOutQuad,
	"out_cubic":    EaseOutCubic,
	"in_out_cubic": EaseInOutCubic,
	"out_quart":    EaseOutQuart,
	"out_quint":    EaseOutQuint,
	"out_back":     EaseOutBack,
}

// EasingByName 按配置名查找缓动函数（如 "out_quart"）
func EasingByName(name string) (func(float64) float64, bool) {
	f, ok := easings[name]
	return f, ok
}

// EasingNames 所有可用的缓动名（已排序）
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
