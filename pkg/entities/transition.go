package entities

import (
	"github.com/decker502/skillaction/pkg/components"
	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/decker502/skillaction/pkg/render"
	"github.com/go-gl/mathgl/mgl32"
)

// FadeState 过渡状态
type FadeState int

const (
	FadeNone FadeState = iota
	FadeIn             // 从不透明到透明
	FadeOut            // 从透明到不透明
)

// Transition 全屏淡入淡出：一张铺满屏幕的 Sprite，按帧改变透明度
type Transition struct {
	ecs.GameObject

	// Asset 遮罩纹理资源键（通常是纯黑纹理），Init 前设置
	Asset string
	// OnFade 过渡开始/结束时调用，用于同步场景的过渡标记
	OnFade func(active bool)

	state  FadeState
	frame  int
	frames int
	done   func()
}

// Init 添加屏幕空间 Sprite，铺满逻辑分辨率，初始完全透明
func (t *Transition) Init() error {
	if _, err := components.AddRenderer(t.Base(), render.KindSprite, t.Asset); err != nil {
		return err
	}
	w, h := float32(0), float32(0)
	if svc := t.Services(); svc != nil {
		w, h = float32(svc.ScreenWidth), float32(svc.ScreenHeight)
	}
	t.Param.Pos = mgl32.Vec3{w / 2, h / 2, 0}
	t.Param.Size = mgl32.Vec3{w, h, 1}
	t.Param.Color = mgl32.Vec4{0, 0, 0, 0}
	return nil
}

// FadeIn 在 frames 帧内从不透明淡到透明，结束后调用 done
func (t *Transition) FadeIn(frames int, done func()) {
	t.start(FadeIn, frames, done)
}

// FadeOut 在 frames 帧内从透明淡到不透明，结束后调用 done
func (t *Transition) FadeOut(frames int, done func()) {
	t.start(FadeOut, frames, done)
}

func (t *Transition) start(state FadeState, frames int, done func()) {
	t.state = state
	t.frame = 0
	t.frames = frames
	t.done = done
	if t.OnFade != nil {
		t.OnFade(true)
	}
	t.applyAlpha()
	if frames <= 0 {
		t.finish()
	}
}

func (t *Transition) Update() {
	if t.state != FadeNone {
		t.frame++
		t.applyAlpha()
		if t.frame >= t.frames {
			t.finish()
		}
	}
	t.GameObject.Update()
}

func (t *Transition) applyAlpha() {
	p := float32(1)
	if t.frames > 0 {
		p = mgl32.Clamp(float32(t.frame)/float32(t.frames), 0, 1)
	}
	switch t.state {
	case FadeIn:
		t.Param.Color[3] = 1 - p
	case FadeOut:
		t.Param.Color[3] = p
	}
}

// finish 先复位状态再回调，回调中可以立刻开始下一次过渡
func (t *Transition) finish() {
	if t.state == FadeIn {
		t.Param.Color[3] = 0
	} else {
		t.Param.Color[3] = 1
	}
	done := t.done
	t.state = FadeNone
	t.done = nil
	if t.OnFade != nil {
		t.OnFade(false)
	}
	if done != nil {
		done()
	}
}

// Draw 完全透明时不提交绘制
func (t *Transition) Draw() {
	if t.Param.Color.W() <= 0 {
		return
	}
	t.GameObject.Draw()
}

// State 当前过渡状态
func (t *Transition) State() FadeState { return t.state }

// Alpha 遮罩当前不透明度
func (t *Transition) Alpha() float32 { return t.Param.Color.W() }
