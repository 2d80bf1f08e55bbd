package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GroundRaycast 把屏幕坐标反投影为射线，求与水平面 y=planeY 的交点
//
// 参数：
//   - x, y: 屏幕像素坐标（左上角为原点）
//   - width, height: 视口尺寸
//   - view, proj: 相机矩阵
//   - planeY: 地面高度
//
// 返回：
//   - mgl32.Vec3: 交点
//   - bool: 射线与平面平行或交点在相机后方时为 false
func GroundRaycast(x, y, width, height int, view, proj mgl32.Mat4, planeY float32) (mgl32.Vec3, bool) {
	if width <= 0 || height <= 0 {
		return mgl32.Vec3{}, false
	}
	winX := float32(x)
	winY := float32(height - y)

	near, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, false
	}

	dir := far.Sub(near)
	if math.Abs(float64(dir.Y())) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (planeY - near.Y()) / dir.Y()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return near.Add(dir.Mul(t)), true
}
