package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

// maxBatchVertices DrawTriangles 单次调用的顶点上限（uint16 索引）
const maxBatchVertices = 65535

type line struct {
	from, to mgl32.Vec3
	color    mgl32.Vec4
}

type projectedTriangle struct {
	verts [3]ebiten.Vertex
	depth float32
}

// EbitenRenderer 基于 ebiten.DrawTriangles 的软件透视渲染器
//
// 没有深度缓冲：对象按提交顺序绘制，模型内部的三角形按深度从远到近排序。
type EbitenRenderer struct {
	assets *AssetStore
	logger *zap.Logger

	target        *ebiten.Image
	width, height int

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4
	eye      mgl32.Vec3

	lines   []line
	white   *ebiten.Image
	missing map[string]bool
}

// NewEbitenRenderer 创建渲染器
func NewEbitenRenderer(assets *AssetStore, logger *zap.Logger) *EbitenRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EbitenRenderer{
		assets:   assets,
		logger:   logger.Named("renderer"),
		view:     mgl32.Ident4(),
		proj:     mgl32.Ident4(),
		viewProj: mgl32.Ident4(),
		missing:  make(map[string]bool),
	}
}

// Assets 返回资源表
func (r *EbitenRenderer) Assets() *AssetStore {
	return r.assets
}

// Begin 设置本帧的绘制目标，必须在场景 Draw 之前调用
func (r *EbitenRenderer) Begin(screen *ebiten.Image) {
	r.target = screen
	b := screen.Bounds()
	r.width, r.height = b.Dx(), b.Dy()
}

// SetCamera 设置视图/投影矩阵
func (r *EbitenRenderer) SetCamera(view, proj mgl32.Mat4) {
	r.view = view
	r.proj = proj
	r.viewProj = proj.Mul4(view)
	r.eye = view.Inv().Col(3).Vec3()
}

// HasAsset 检查资源键
func (r *EbitenRenderer) HasAsset(key string) bool {
	return r.assets.Has(key)
}

// Submit 按渲染种类分派绘制
func (r *EbitenRenderer) Submit(kind Kind, key string, p Param) {
	if r.target == nil {
		return
	}
	switch kind {
	case KindBillboard:
		r.drawBillboard(key, p)
	case KindSprite3D:
		r.drawSprite3D(key, p)
	case KindSprite:
		r.drawSprite(key, p)
	case KindModel:
		r.drawModel(key, p)
	default:
		r.logger.Warn("unknown render kind", zap.Int("kind", int(kind)), zap.String("key", key))
	}
}

// AddLine 缓存一条线段
func (r *EbitenRenderer) AddLine(from, to mgl32.Vec3, c mgl32.Vec4) {
	r.lines = append(r.lines, line{from: from, to: to, color: c})
}

// FlushLines 投影并绘制所有缓存线段
func (r *EbitenRenderer) FlushLines() {
	if r.target != nil {
		for _, l := range r.lines {
			x0, y0, _, ok0 := ProjectToScreen(l.from, r.viewProj, r.width, r.height)
			x1, y1, _, ok1 := ProjectToScreen(l.to, r.viewProj, r.width, r.height)
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(r.target, x0, y0, x1, y1, 1, toColor(l.color), true)
		}
	}
	r.lines = r.lines[:0]
}

// PendingLines 返回尚未绘制的线段数量
func (r *EbitenRenderer) PendingLines() int {
	return len(r.lines)
}

func (r *EbitenRenderer) texture(key string) (*ebiten.Image, bool) {
	img, ok := r.assets.Texture(key)
	if !ok {
		r.reportMissing(key)
	}
	return img, ok
}

func (r *EbitenRenderer) reportMissing(key string) {
	if r.missing[key] {
		return
	}
	r.missing[key] = true
	r.logger.Warn("asset missing at draw time", zap.String("key", key))
}

func (r *EbitenRenderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

func (r *EbitenRenderer) drawBillboard(key string, p Param) {
	img, ok := r.texture(key)
	if !ok {
		return
	}
	right := r.view.Row(0).Vec3().Mul(p.Size.X() * 0.5)
	up := r.view.Row(1).Vec3().Mul(p.Size.Y() * 0.5)
	corners := [4]mgl32.Vec3{
		p.Pos.Sub(right).Add(up),
		p.Pos.Add(right).Add(up),
		p.Pos.Sub(right).Sub(up),
		p.Pos.Add(right).Sub(up),
	}
	r.drawQuad(corners, img, p, false)
}

// unitQuad 局部 XY 平面上的单位面片，法线朝 -Z
var unitQuad = [4]mgl32.Vec3{
	{-0.5, 0.5, 0},
	{0.5, 0.5, 0},
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
}

func (r *EbitenRenderer) drawSprite3D(key string, p Param) {
	img, ok := r.texture(key)
	if !ok {
		return
	}
	world := p.World()
	var corners [4]mgl32.Vec3
	for i, v := range unitQuad {
		corners[i] = mgl32.TransformCoordinate(v, world)
	}
	r.drawQuad(corners, img, p, p.Cull)
}

func (r *EbitenRenderer) drawQuad(corners [4]mgl32.Vec3, img *ebiten.Image, p Param, cull bool) {
	if cull && !r.facesCamera(corners[0], corners[1], corners[2]) {
		return
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	vs := make([]ebiten.Vertex, 4)
	for i, c := range corners {
		x, y, _, ok := ProjectToScreen(c, r.viewProj, r.width, r.height)
		if !ok {
			return
		}
		sx, sy := r.srcCoord(img, p, uvs[i])
		vs[i] = vertex(x, y, sx, sy, p.Color)
	}
	r.target.DrawTriangles(vs, []uint16{0, 1, 2, 1, 3, 2}, img, nil)
}

func (r *EbitenRenderer) drawSprite(key string, p Param) {
	img, ok := r.texture(key)
	if !ok {
		return
	}
	b := img.Bounds()
	src := image.Rect(
		b.Min.X+int(p.UVPos.X()*float32(b.Dx())),
		b.Min.Y+int(p.UVPos.Y()*float32(b.Dy())),
		b.Min.X+int((p.UVPos.X()+p.UVSize.X())*float32(b.Dx())),
		b.Min.Y+int((p.UVPos.Y()+p.UVSize.Y())*float32(b.Dy())),
	)
	sub := img.SubImage(src).(*ebiten.Image)
	w, h := float64(src.Dx()), float64(src.Dy())
	if w == 0 || h == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(float64(p.Size.X())/w, float64(p.Size.Y())/h)
	op.GeoM.Rotate(float64(p.Rotate.Z()))
	op.GeoM.Translate(float64(p.Pos.X()), float64(p.Pos.Y()))
	a := p.Color.W()
	op.ColorScale.Scale(p.Color.X()*a, p.Color.Y()*a, p.Color.Z()*a, a)
	r.target.DrawImage(sub, op)
}

func (r *EbitenRenderer) drawModel(key string, p Param) {
	m, ok := r.assets.Model(key)
	if !ok {
		r.reportMissing(key)
		return
	}
	img := m.Texture
	if img == nil {
		img = r.whiteImage()
	}
	world := p.World()

	tris := make([]projectedTriangle, 0, len(m.Indices)/3)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var wp [3]mgl32.Vec3
		var tri projectedTriangle
		visible := true
		for k := 0; k < 3; k++ {
			mv := m.Vertices[m.Indices[i+k]]
			wp[k] = mgl32.TransformCoordinate(mv.Pos, world)
			x, y, z, ok := ProjectToScreen(wp[k], r.viewProj, r.width, r.height)
			if !ok {
				visible = false
				break
			}
			sx, sy := r.srcCoord(img, p, mv.UV)
			tri.verts[k] = vertex(x, y, sx, sy, p.Color)
			tri.depth += z
		}
		if !visible {
			continue
		}
		if p.Cull && !r.facesCamera(wp[0], wp[1], wp[2]) {
			continue
		}
		tris = append(tris, tri)
	}

	sort.SliceStable(tris, func(a, b int) bool { return tris[a].depth > tris[b].depth })

	vs := make([]ebiten.Vertex, 0, len(tris)*3)
	is := make([]uint16, 0, len(tris)*3)
	for _, t := range tris {
		if len(vs)+3 > maxBatchVertices {
			r.target.DrawTriangles(vs, is, img, nil)
			vs, is = vs[:0], is[:0]
		}
		base := uint16(len(vs))
		vs = append(vs, t.verts[:]...)
		is = append(is, base, base+1, base+2)
	}
	if len(vs) > 0 {
		r.target.DrawTriangles(vs, is, img, nil)
	}
}

func (r *EbitenRenderer) facesCamera(a, b, c mgl32.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	return n.Dot(r.eye.Sub(a)) > 0
}

func (r *EbitenRenderer) srcCoord(img *ebiten.Image, p Param, uv mgl32.Vec2) (float32, float32) {
	b := img.Bounds()
	u := p.UVPos.X() + uv.X()*p.UVSize.X()
	v := p.UVPos.Y() + uv.Y()*p.UVSize.Y()
	return float32(b.Min.X) + u*float32(b.Dx()), float32(b.Min.Y) + v*float32(b.Dy())
}

func vertex(x, y, sx, sy float32, c mgl32.Vec4) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   sx,
		SrcY:   sy,
		ColorR: c.X(),
		ColorG: c.Y(),
		ColorB: c.Z(),
		ColorA: c.W(),
	}
}

func toColor(c mgl32.Vec4) color.Color {
	clamp := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f * 255)
	}
	return color.NRGBA{R: clamp(c.X()), G: clamp(c.Y()), B: clamp(c.Z()), A: clamp(c.W())}
}
