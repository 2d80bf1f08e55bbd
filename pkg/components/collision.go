package components

import (
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// ObbInfo OBB 参数（局部空间）
type ObbInfo struct {
	Center   mgl32.Vec3 // 中心（相对实体原点）
	HalfSize mgl32.Vec3 // 半尺寸
}

// DebugLineColor 碰撞体线框颜色
var DebugLineColor = mgl32.Vec4{0, 1, 0, 1}

// CollisionOBB 有向包围盒碰撞体
//
// 盒子的位姿 = 所属实体的世界矩阵（缩放 -> 旋转 -> 平移），
// 因此实体的 Size 也会放大碰撞体。
type CollisionOBB struct {
	ecs.BaseComponent
	info ObbInfo
}

// Init 默认为以原点为中心的单位盒
func (c *CollisionOBB) Init() {
	c.info = ObbInfo{HalfSize: mgl32.Vec3{0.5, 0.5, 0.5}}
}

// Capabilities 碰撞能力
func (c *CollisionOBB) Capabilities() ecs.Capability { return ecs.CapCollision }

// Center 返回局部中心
func (c *CollisionOBB) Center() mgl32.Vec3 { return c.info.Center }

// SetCenter 设置局部中心
func (c *CollisionOBB) SetCenter(center mgl32.Vec3) { c.info.Center = center }

// Size 返回完整尺寸（半尺寸 * 2）
func (c *CollisionOBB) Size() mgl32.Vec3 { return c.info.HalfSize.Mul(2) }

// SetSize 设置完整尺寸
func (c *CollisionOBB) SetSize(size mgl32.Vec3) { c.info.HalfSize = size.Mul(0.5) }

// Info 返回 OBB 参数
func (c *CollisionOBB) Info() ObbInfo { return c.info }

// SetInfo 设置 OBB 参数
func (c *CollisionOBB) SetInfo(info ObbInfo) { c.info = info }

// IsHit 分离轴测试
//
// 候选轴：A 的 3 个局部轴、B 的 3 个局部轴（取自世界矩阵，带缩放、未归一化），
// 以及 A 轴 × B 轴的 9 个叉积（归一化）。任一轴上
// 两盒投影半径之和 < 中心距投影，即判定未碰撞。
// 平行边产生的零长度叉积归一化后为 NaN，比较恒为 false，该轴不会分离。
// other 不是 OBB 时返回 false。
func (c *CollisionOBB) IsHit(other ecs.Collider) bool {
	o, ok := other.(*CollisionOBB)
	if !ok || c.Owner() == nil || o.Owner() == nil {
		return false
	}

	wa := c.Owner().World()
	wb := o.Owner().World()

	pa := mgl32.TransformCoordinate(c.info.Center, wa)
	pb := mgl32.TransformCoordinate(o.info.Center, wb)
	d := pa.Sub(pb)

	var n, l [6]mgl32.Vec3
	for i := 0; i < 3; i++ {
		n[i] = wa.Col(i).Vec3()
		n[i+3] = wb.Col(i).Vec3()
		l[i] = n[i].Mul(c.info.HalfSize[i])
		l[i+3] = n[i+3].Mul(o.info.HalfSize[i])
	}

	for i := 0; i < 6; i++ {
		if separated(n[i], l, d) {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		for j := 3; j < 6; j++ {
			if separated(n[i].Cross(n[j]).Normalize(), l, d) {
				return false
			}
		}
	}
	return true
}

func separated(axis mgl32.Vec3, l [6]mgl32.Vec3, d mgl32.Vec3) bool {
	var fL float32
	for _, v := range l {
		fL += mgl32.Abs(axis.Dot(v))
	}
	fD := mgl32.Abs(axis.Dot(d))
	return fL < fD
}

// boxEdges 8 个角点之间的 12 条边
var boxEdges = [12][2]int{
	{0, 1}, {0, 2}, {3, 1}, {3, 2}, // 前面
	{4, 5}, {4, 6}, {7, 5}, {7, 6}, // 背面
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // 侧面
}

// Corners 返回世界空间的 8 个角点
func (c *CollisionOBB) Corners() [8]mgl32.Vec3 {
	h := c.info.HalfSize
	local := [8]mgl32.Vec3{
		{-h[0], +h[1], -h[2]},
		{-h[0], -h[1], -h[2]},
		{+h[0], +h[1], -h[2]},
		{+h[0], -h[1], -h[2]},
		{-h[0], +h[1], +h[2]},
		{-h[0], -h[1], +h[2]},
		{+h[0], +h[1], +h[2]},
		{+h[0], -h[1], +h[2]},
	}

	world := mgl32.Ident4()
	if c.Owner() != nil {
		world = c.Owner().World()
	}
	var out [8]mgl32.Vec3
	for i, v := range local {
		out[i] = mgl32.TransformCoordinate(v.Add(c.info.Center), world)
	}
	return out
}

// Draw 向渲染服务提交线框（只看 Active，是否显示由场景决定）
func (c *CollisionOBB) Draw() {
	if !c.Active() || c.Owner() == nil {
		return
	}
	svc := c.Owner().Services()
	if svc == nil || svc.Renderer == nil {
		return
	}
	corners := c.Corners()
	for _, e := range boxEdges {
		svc.Renderer.AddLine(corners[e[0]], corners[e[1]], DebugLineColor)
	}
}
