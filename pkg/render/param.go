// Package render 提供渲染参数块、资源表、相机与渲染服务接口
//
// 核心层（ecs/game）只通过 Service 接口提交绘制请求，
// 不直接接触 ebiten 的图像或着色器状态。
package render

import "github.com/go-gl/mathgl/mgl32"

// Kind 渲染种类（封闭集合，由渲染服务中的单个 switch 分派）
type Kind int

const (
	KindBillboard Kind = iota // 始终朝向相机的面片
	KindSprite3D              // 世界空间中的面片
	KindSprite                // 屏幕空间 2D 精灵
	KindModel                 // 三角形网格
)

// String 返回渲染种类的名称
func (k Kind) String() string {
	switch k {
	case KindBillboard:
		return "Billboard"
	case KindSprite3D:
		return "Sprite3D"
	case KindSprite:
		return "Sprite"
	case KindModel:
		return "Model"
	default:
		return "Unknown"
	}
}

// Param 渲染参数块
// 实体每帧把自己的参数块推送给渲染组件，渲染组件再转交给渲染服务
type Param struct {
	Pos    mgl32.Vec3 // 位置
	Size   mgl32.Vec3 // 缩放
	Rotate mgl32.Vec3 // 旋转（弧度，x=pitch y=yaw z=roll）
	Color  mgl32.Vec4 // 颜色 RGBA 0~1
	UVPos  mgl32.Vec2 // UV 起点
	UVSize mgl32.Vec2 // UV 大小
	Cull   bool       // 是否剔除背面
}

// DefaultParam 返回默认参数：原点、单位缩放、白色、完整 UV
func DefaultParam() Param {
	return Param{
		Size:   mgl32.Vec3{1, 1, 1},
		Color:  mgl32.Vec4{1, 1, 1, 1},
		UVSize: mgl32.Vec2{1, 1},
		Cull:   true,
	}
}

// World 返回参数块对应的世界矩阵
func (p Param) World() mgl32.Mat4 {
	return WorldMatrix(p.Pos, p.Rotate, p.Size)
}

// WorldMatrix 组合 缩放 -> 旋转(roll, pitch, yaw) -> 平移
//
// 列向量约定下为 T * Ry * Rx * Rz * S，
// 因此矩阵的第 0~2 列就是带缩放的局部 X/Y/Z 轴。
func WorldMatrix(pos, rot, size mgl32.Vec3) mgl32.Mat4 {
	s := mgl32.Scale3D(size.X(), size.Y(), size.Z())
	r := RotationMatrix(rot)
	t := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	return t.Mul4(r).Mul4(s)
}

// RotationMatrix 按 roll(Z) -> pitch(X) -> yaw(Y) 的顺序组合旋转
func RotationMatrix(rot mgl32.Vec3) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(rot.X())
	ry := mgl32.HomogRotate3DY(rot.Y())
	rz := mgl32.HomogRotate3DZ(rot.Z())
	return ry.Mul4(rx).Mul4(rz)
}
