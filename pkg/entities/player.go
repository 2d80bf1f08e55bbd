package entities

import (
	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// PlayerColliderTag 玩家碰撞体标签
const PlayerColliderTag = "player"

// 未配置时的移动参数
const (
	defaultPlayerSpeed = 0.1
	defaultMoveFrames  = 30
)

// Player 玩家：Billboard + OBB
//
// 移动方式：
//   - WASD：相对相机朝向（投影到水平面）逐帧移动
//   - 左键点击地面：按 Ease 曲线在 MoveFrames 帧内移动到点击位置
//
// 每帧开始记录 OldPos，撞墙时回退到该位置并取消点击移动。
type Player struct {
	ecs.GameObject

	// 以下字段在 Init 前设置
	Asset        string
	Speed        float32
	MoveFrames   int
	Ease         ecs.EaseFunc // 点击移动的缓动曲线，为 nil 时使用 EaseOutQuart
	ColliderSize mgl32.Vec3
	// Ground 用作射线平面的地面实体名
	Ground string

	box  *components.CollisionOBB
	move clickMove
}

type clickMove struct {
	active   bool
	from, to mgl32.Vec3
	frame    int
}

func (p *Player) Init() error {
	if p.Speed <= 0 {
		p.Speed = defaultPlayerSpeed
	}
	if p.MoveFrames <= 0 {
		p.MoveFrames = defaultMoveFrames
	}
	if p.Ease == nil {
		p.Ease = utils.EaseOutQuart
	}
	if _, err := components.AddRenderer(p.Base(), render.KindBillboard, p.Asset); err != nil {
		return err
	}
	box, err := ecs.AddComponent[components.CollisionOBB](p.Base())
	if err != nil {
		return err
	}
	box.SetTag(PlayerColliderTag)
	if p.ColliderSize != (mgl32.Vec3{}) {
		box.SetSize(p.ColliderSize)
	}
	p.box = box
	return nil
}

func (p *Player) Update() {
	p.OldPos = p.Param.Pos

	if in := p.input(); in != nil {
		if dir := p.keyDirection(in); dir != (mgl32.Vec3{}) {
			p.move.active = false
			p.Param.Pos = p.Param.Pos.Add(dir.Mul(p.Speed))
		} else if in.IsMouseJustPressed(ebiten.MouseButtonLeft) {
			p.startClickMove(in)
		}
	}

	if p.move.active {
		p.move.frame++
		p.MoveTo(p.move.from, p.move.to, float32(p.move.frame), float32(p.MoveFrames), p.Ease)
		if p.move.frame >= p.MoveFrames {
			p.move.active = false
		}
	}

	p.GameObject.Update()
}

func (p *Player) input() utils.Input {
	if svc := p.Services(); svc != nil {
		return svc.Input
	}
	return nil
}

// keyDirection WASD 对应的水平单位方向，无按键时为零向量
func (p *Player) keyDirection(in utils.Input) mgl32.Vec3 {
	forward := p.cameraForward()
	right := mgl32.Vec3{0, 1, 0}.Cross(forward)

	var dir mgl32.Vec3
	if in.IsKeyPressed(ebiten.KeyW) {
		dir = dir.Add(forward)
	}
	if in.IsKeyPressed(ebiten.KeyS) {
		dir = dir.Sub(forward)
	}
	if in.IsKeyPressed(ebiten.KeyD) {
		dir = dir.Add(right)
	}
	if in.IsKeyPressed(ebiten.KeyA) {
		dir = dir.Sub(right)
	}
	if dir.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return dir.Normalize()
}

// cameraForward 相机朝向在水平面上的投影，相机垂直向下或没有相机时取 +Z
func (p *Player) cameraForward() mgl32.Vec3 {
	svc := p.Services()
	if svc == nil {
		return mgl32.Vec3{0, 0, 1}
	}
	cam, ok := svc.Camera.(interface{ Forward() mgl32.Vec3 })
	if !ok {
		return mgl32.Vec3{0, 0, 1}
	}
	f := cam.Forward()
	f[1] = 0
	if f.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return f.Normalize()
}

func (p *Player) startClickMove(in utils.Input) {
	svc := p.Services()
	if svc.Camera == nil {
		return
	}
	x, y := in.CursorPosition()
	hit, ok := utils.GroundRaycast(x, y, svc.ScreenWidth, svc.ScreenHeight,
		svc.Camera.View(), svc.Camera.Projection(), p.groundHeight())
	if !ok {
		return
	}
	hit[1] = p.Param.Pos.Y()
	p.move = clickMove{active: true, from: p.Param.Pos, to: hit}
	p.Logger().Debug("click move", zap.Float32("x", hit.X()), zap.Float32("z", hit.Z()))
}

func (p *Player) groundHeight() float32 {
	svc := p.Services()
	if svc.World == nil || p.Ground == "" {
		return 0
	}
	if f, ok := svc.World.GetEntityByName(p.Ground).(*Field); ok {
		return f.Height()
	}
	return 0
}

// OnColliderHit 撞墙回退到上一帧位置
func (p *Player) OnColliderHit(other ecs.Collider, thisTag string) {
	if _, ok := other.Owner().Self().(*Wall); ok {
		p.Param.Pos = p.OldPos
		p.move.active = false
	}
}

// Moving 是否正在执行点击移动
func (p *Player) Moving() bool { return p.move.active }

// Box 碰撞体
func (p *Player) Box() *components.CollisionOBB { return p.box }
