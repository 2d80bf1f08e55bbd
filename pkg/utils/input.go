// Package utils 提供通用工具函数：输入、缓动、拾取射线
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input 输入查询服务
// 实体在自己的 Update 中读取；核心层不依赖它。
type Input interface {
	// IsKeyPressed 按键是否处于按下状态
	IsKeyPressed(key ebiten.Key) bool
	// IsKeyJustPressed 按键是否在本帧刚按下
	IsKeyJustPressed(key ebiten.Key) bool
	// IsMouseJustPressed 鼠标按钮是否在本帧刚按下
	IsMouseJustPressed(button ebiten.MouseButton) bool
	// CursorPosition 指针位置（触摸优先）
	CursorPosition() (int, int)
	// Drag 当前拖拽信息（右键或触摸）
	Drag() DragInfo
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置
	CurrentX, CurrentY int
	// DeltaX, DeltaY 相对上一帧的位移
	DeltaX, DeltaY int
}

// IsDragging 是否处于拖拽中（含刚开始的那一帧）
func (d DragInfo) IsDragging() bool {
	return d.State == DragStateStarted || d.State == DragStateDragging
}

// Distance 从起点到当前位置的位移
func (d DragInfo) Distance() (dx, dy int) {
	return d.CurrentX - d.StartX, d.CurrentY - d.StartY
}

// EbitenInput 基于 ebiten/inpututil 的输入服务
// 每帧开始时调用一次 Update 以刷新拖拽状态
type EbitenInput struct {
	drag DragInfo
}

// NewEbitenInput 创建输入服务
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Update 刷新拖拽状态
func (in *EbitenInput) Update() {
	x, y := in.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || len(ebiten.AppendTouchIDs(nil)) > 0
	in.drag = stepDrag(in.drag, pressed, x, y)
}

// stepDrag 拖拽状态机：None -> Started -> Dragging -> Ended -> None
func stepDrag(d DragInfo, pressed bool, x, y int) DragInfo {
	switch {
	case pressed && !d.IsDragging():
		return DragInfo{State: DragStateStarted, StartX: x, StartY: y, CurrentX: x, CurrentY: y}
	case pressed:
		d.State = DragStateDragging
		d.DeltaX, d.DeltaY = x-d.CurrentX, y-d.CurrentY
		d.CurrentX, d.CurrentY = x, y
		return d
	case d.IsDragging():
		d.State = DragStateEnded
		d.DeltaX, d.DeltaY = 0, 0
		return d
	default:
		return DragInfo{}
	}
}

// IsKeyPressed 实现 Input
func (in *EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsKeyJustPressed 实现 Input
func (in *EbitenInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// IsMouseJustPressed 实现 Input（左键同时接受触摸）
func (in *EbitenInput) IsMouseJustPressed(button ebiten.MouseButton) bool {
	if button == ebiten.MouseButtonLeft && len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(button)
}

// CursorPosition 实现 Input，触摸优先
func (in *EbitenInput) CursorPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// Drag 实现 Input
func (in *EbitenInput) Drag() DragInfo {
	return in.drag
}

// FakeInput 测试与回放用的输入服务
type FakeInput struct {
	Pressed     map[ebiten.Key]bool
	JustPressed map[ebiten.Key]bool
	MouseJust   map[ebiten.MouseButton]bool
	CursorX     int
	CursorY     int
	DragInfo    DragInfo
}

// NewFakeInput 创建空的假输入
func NewFakeInput() *FakeInput {
	return &FakeInput{
		Pressed:     make(map[ebiten.Key]bool),
		JustPressed: make(map[ebiten.Key]bool),
		MouseJust:   make(map[ebiten.MouseButton]bool),
	}
}

// IsKeyPressed 实现 Input
func (f *FakeInput) IsKeyPressed(key ebiten.Key) bool { return f.Pressed[key] }

// IsKeyJustPressed 实现 Input
func (f *FakeInput) IsKeyJustPressed(key ebiten.Key) bool { return f.JustPressed[key] }

// IsMouseJustPressed 实现 Input
func (f *FakeInput) IsMouseJustPressed(b ebiten.MouseButton) bool { return f.MouseJust[b] }

// CursorPosition 实现 Input
func (f *FakeInput) CursorPosition() (int, int) { return f.CursorX, f.CursorY }

// Drag 实现 Input
func (f *FakeInput) Drag() DragInfo { return f.DragInfo }

// Reset 清空所有“刚按下”状态，模拟进入下一帧
func (f *FakeInput) Reset() {
	clear(f.JustPressed)
	clear(f.MouseJust)
}
