package systems

import (
	"math"

	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// CameraKind 当前使用的相机
type CameraKind int

const (
	CameraGame  CameraKind = iota // 跟随目标的环绕相机
	CameraDebug                   // 自由飞行的调试相机
)

func (k CameraKind) String() string {
	if k == CameraDebug {
		return "debug"
	}
	return "game"
}

// 相机操作参数
const (
	orbitSpeed = 0.03 // 每帧旋转弧度（方向键）
	minPitch   = 5 * math.Pi / 180
	maxPitch   = 85 * math.Pi / 180
)

// CameraSystem 管理游戏相机和调试相机，并作为场景的相机服务
//
// 游戏相机：以 radius/pitch/yaw 描述相对目标的偏移，每帧按 followRate 靠近期望位置；
// 方向键左右改变 yaw，上下改变 pitch。
// 调试相机：IJKL 水平移动，U/O 升降，方向键转动视线。
type CameraSystem struct {
	gameCam  *render.Camera
	debugCam *render.Camera
	kind     CameraKind

	radius     float32
	pitch      float32 // 弧度
	yaw        float32 // 弧度，0 表示从 -Z 方向看向目标
	followRate float32
	flySpeed   float32

	input  utils.Input
	target func() (mgl32.Vec3, bool)
}

// NewCameraSystem 创建相机系统
//
// 参数：
//   - input: 输入服务，可为 nil（相机只跟随不响应按键）
//   - radius: 游戏相机到目标的距离
//   - pitchDeg: 俯角（度）
//   - followRate: 每帧靠近期望位置的比例 (0, 1]
//   - flySpeed: 调试相机每帧移动距离
func NewCameraSystem(input utils.Input, radius, pitchDeg, followRate, flySpeed float32) *CameraSystem {
	cs := &CameraSystem{
		gameCam:    render.NewCamera(),
		debugCam:   render.NewCamera(),
		radius:     radius,
		pitch:      mgl32.Clamp(mgl32.DegToRad(pitchDeg), minPitch, maxPitch),
		followRate: followRate,
		flySpeed:   flySpeed,
		input:      input,
	}
	cs.Snap()
	return cs
}

// SetTarget 设置跟随目标；target 返回 false 时相机保持不动
func (cs *CameraSystem) SetTarget(target func() (mgl32.Vec3, bool)) {
	cs.target = target
}

// SetAspect 设置两个相机的宽高比
func (cs *CameraSystem) SetAspect(aspect float32) {
	cs.gameCam.Aspect = aspect
	cs.debugCam.Aspect = aspect
}

// Kind 当前相机
func (cs *CameraSystem) Kind() CameraKind { return cs.kind }

// SetKind 切换相机；切到调试相机时从游戏相机的当前位姿开始
func (cs *CameraSystem) SetKind(kind CameraKind) {
	if kind == cs.kind {
		return
	}
	if kind == CameraDebug {
		*cs.debugCam = *cs.gameCam
	}
	cs.kind = kind
}

// Toggle 在游戏相机和调试相机之间切换
func (cs *CameraSystem) Toggle() {
	if cs.kind == CameraGame {
		cs.SetKind(CameraDebug)
	} else {
		cs.SetKind(CameraGame)
	}
}

// Active 当前使用的相机
func (cs *CameraSystem) Active() *render.Camera {
	if cs.kind == CameraDebug {
		return cs.debugCam
	}
	return cs.gameCam
}

// View 实现 render.CameraService
func (cs *CameraSystem) View() mgl32.Mat4 { return cs.Active().View() }

// Projection 实现 render.CameraService
func (cs *CameraSystem) Projection() mgl32.Mat4 { return cs.Active().Projection() }

// Forward 当前相机的朝向
func (cs *CameraSystem) Forward() mgl32.Vec3 { return cs.Active().Forward() }

// Snap 游戏相机立刻移动到期望位置
func (cs *CameraSystem) Snap() {
	look := cs.targetPos()
	cs.gameCam.Look = look
	cs.gameCam.Pos = look.Add(cs.offset())
}

// Update 每帧更新当前相机
func (cs *CameraSystem) Update() {
	if cs.kind == CameraDebug {
		cs.updateDebug()
		return
	}
	cs.updateGame()
}

func (cs *CameraSystem) updateGame() {
	if cs.input != nil {
		if cs.input.IsKeyPressed(ebiten.KeyArrowLeft) {
			cs.yaw -= orbitSpeed
		}
		if cs.input.IsKeyPressed(ebiten.KeyArrowRight) {
			cs.yaw += orbitSpeed
		}
		if cs.input.IsKeyPressed(ebiten.KeyArrowUp) {
			cs.pitch = mgl32.Clamp(cs.pitch+orbitSpeed, minPitch, maxPitch)
		}
		if cs.input.IsKeyPressed(ebiten.KeyArrowDown) {
			cs.pitch = mgl32.Clamp(cs.pitch-orbitSpeed, minPitch, maxPitch)
		}
	}

	look := cs.targetPos()
	eye := look.Add(cs.offset())
	cs.gameCam.Look = approach(cs.gameCam.Look, look, cs.followRate)
	cs.gameCam.Pos = approach(cs.gameCam.Pos, eye, cs.followRate)
}

func (cs *CameraSystem) updateDebug() {
	if cs.input == nil {
		return
	}
	c := cs.debugCam
	forward := c.Forward()
	flat := mgl32.Vec3{forward.X(), 0, forward.Z()}
	if flat.Len() < 1e-6 {
		flat = mgl32.Vec3{0, 0, 1}
	}
	flat = flat.Normalize()
	right := mgl32.Vec3{0, 1, 0}.Cross(flat)

	var move mgl32.Vec3
	keys := []struct {
		key ebiten.Key
		dir mgl32.Vec3
	}{
		{ebiten.KeyI, flat},
		{ebiten.KeyK, flat.Mul(-1)},
		{ebiten.KeyL, right},
		{ebiten.KeyJ, right.Mul(-1)},
		{ebiten.KeyO, mgl32.Vec3{0, 1, 0}},
		{ebiten.KeyU, mgl32.Vec3{0, -1, 0}},
	}
	for _, k := range keys {
		if cs.input.IsKeyPressed(k.key) {
			move = move.Add(k.dir)
		}
	}
	if move.Len() > 0 {
		move = move.Normalize().Mul(cs.flySpeed)
		c.Pos = c.Pos.Add(move)
		c.Look = c.Look.Add(move)
	}

	// 方向键绕相机自身转动视线
	var yaw, pitch float32
	if cs.input.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= orbitSpeed
	}
	if cs.input.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += orbitSpeed
	}
	if cs.input.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch += orbitSpeed
	}
	if cs.input.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch -= orbitSpeed
	}
	if yaw != 0 || pitch != 0 {
		dir := c.Look.Sub(c.Pos)
		dir = mgl32.HomogRotate3DY(yaw).Mul4x1(dir.Vec4(0)).Vec3()
		axis := mgl32.Vec3{0, 1, 0}.Cross(dir)
		if axis.Len() > 1e-6 {
			dir = mgl32.HomogRotate3D(-pitch, axis.Normalize()).Mul4x1(dir.Vec4(0)).Vec3()
		}
		c.Look = c.Pos.Add(dir)
	}
}

// offset 期望的 相机位置 - 目标位置
func (cs *CameraSystem) offset() mgl32.Vec3 {
	sp, cp := math.Sincos(float64(cs.pitch))
	sy, cy := math.Sincos(float64(cs.yaw))
	r := float64(cs.radius)
	return mgl32.Vec3{
		float32(-sy * cp * r),
		float32(sp * r),
		float32(-cy * cp * r),
	}
}

func (cs *CameraSystem) targetPos() mgl32.Vec3 {
	if cs.target == nil {
		return mgl32.Vec3{}
	}
	if p, ok := cs.target(); ok {
		return p
	}
	return cs.gameCam.Look
}

func approach(from, to mgl32.Vec3, rate float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(rate))
}
