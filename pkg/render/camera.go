package render

import "github.com/go-gl/mathgl/mgl32"

// 相机默认参数
const (
	DefaultFovyDeg = 60.0
	DefaultAspect  = 16.0 / 9.0
	DefaultNear    = 0.3
	DefaultFar     = 1000.0
)

// CameraService 向场景提供视图/投影矩阵，场景只读不写
type CameraService interface {
	View() mgl32.Mat4
	Projection() mgl32.Mat4
}

// Camera 透视相机
//
// 使用左手坐标系（+Z 为前方，+X 为右方）：
// 在 mgl32 右手 LookAt 的结果上镜像 X 轴。
type Camera struct {
	Pos    mgl32.Vec3
	Look   mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32 // 弧度
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera 创建默认相机：位于 (0,10,-10)，注视原点
func NewCamera() *Camera {
	return &Camera{
		Pos:    mgl32.Vec3{0, 10, -10},
		Look:   mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   mgl32.DegToRad(DefaultFovyDeg),
		Aspect: DefaultAspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// View 返回视图矩阵
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Scale3D(-1, 1, 1).Mul4(mgl32.LookAtV(c.Pos, c.Look, c.Up))
}

// Projection 返回透视投影矩阵
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.Fovy, c.Aspect, c.Near, c.Far)
}

// Forward 返回注视方向的单位向量
func (c *Camera) Forward() mgl32.Vec3 {
	d := c.Look.Sub(c.Pos)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return d.Normalize()
}
