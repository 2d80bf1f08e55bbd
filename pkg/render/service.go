package render

import "github.com/go-gl/mathgl/mgl32"

// Service 渲染服务
//
// 渲染组件把实体的参数块连同资源键提交给它；调试路径通过 AddLine/FlushLines 画线框。
// 所有调用都来自同一个逻辑线程（ebiten 的 Draw 回调）。
type Service interface {
	// SetCamera 设置本帧使用的视图/投影矩阵
	SetCamera(view, proj mgl32.Mat4)
	// HasAsset 检查资源键是否已注册
	HasAsset(key string) bool
	// Submit 按渲染种类绘制一个对象
	Submit(kind Kind, key string, p Param)
	// AddLine 缓存一条世界空间线段
	AddLine(from, to mgl32.Vec3, color mgl32.Vec4)
	// FlushLines 绘制并清空缓存的线段
	FlushLines()
}

// ProjectToScreen 把世界坐标投影到屏幕像素坐标
//
// 返回值 ok=false 表示点位于相机近平面之后，不可见。
// depth 为 NDC 深度（-1 近 ~ 1 远）。
func ProjectToScreen(world mgl32.Vec3, viewProj mgl32.Mat4, width, height int) (x, y, depth float32, ok bool) {
	clip := viewProj.Mul4x1(world.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) * 0.5 * float32(width)
	y = (1 - ndc.Y()) * 0.5 * float32(height)
	return x, y, ndc.Z(), true
}
