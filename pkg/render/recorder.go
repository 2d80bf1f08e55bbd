package render

import "github.com/go-gl/mathgl/mgl32"

// Submission 一次 Submit 调用
type Submission struct {
	Kind  Kind
	Key   string
	Param Param
}

// RecordedLine 一条 AddLine 调用
type RecordedLine struct {
	From, To mgl32.Vec3
	Color    mgl32.Vec4
}

// Recorder 不绘制任何东西、只记录调用的渲染服务
// 用于无图形环境（测试、无头回放）。
type Recorder struct {
	Keys        map[string]bool
	View, Proj  mgl32.Mat4
	Submissions []Submission
	Lines       []RecordedLine
	Flushed     int // FlushLines 调用次数
	FlushedLine int // 已刷新的线段总数
}

// NewRecorder 创建记录器，keys 为已注册的资源键
func NewRecorder(keys ...string) *Recorder {
	r := &Recorder{Keys: make(map[string]bool)}
	for _, k := range keys {
		r.Keys[k] = true
	}
	return r
}

// SetCamera 实现 Service
func (r *Recorder) SetCamera(view, proj mgl32.Mat4) {
	r.View, r.Proj = view, proj
}

// HasAsset 实现 Service
func (r *Recorder) HasAsset(key string) bool { return r.Keys[key] }

// Submit 实现 Service
func (r *Recorder) Submit(kind Kind, key string, p Param) {
	r.Submissions = append(r.Submissions, Submission{Kind: kind, Key: key, Param: p})
}

// AddLine 实现 Service
func (r *Recorder) AddLine(from, to mgl32.Vec3, c mgl32.Vec4) {
	r.Lines = append(r.Lines, RecordedLine{From: from, To: to, Color: c})
}

// FlushLines 实现 Service；保留 Lines 以便检查
func (r *Recorder) FlushLines() {
	r.Flushed++
	r.FlushedLine = len(r.Lines)
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Submissions = nil
	r.Lines = nil
	r.Flushed = 0
	r.FlushedLine = 0
}
