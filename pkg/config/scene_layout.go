package config

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// 场景布局中的实体种类
const (
	KindPlayer = "player"
	KindField  = "field"
	KindEnemy  = "enemy"
	KindWall   = "wall"
)

var knownKinds = map[string]bool{
	KindPlayer: true,
	KindField:  true,
	KindEnemy:  true,
	KindWall:   true,
}

// SceneLayout 场景布局：按顺序生成的实体列表
//
// 示例：
//
//	entities:
//	  - kind: field
//	    name: Field
//	    asset: Field
//	    position: [0, 0, 0]
//	    size: [40, 40, 1]
//	    rotation: [90, 0, 0]
//	  - kind: enemy
//	    name: Enemy
//	    asset: Enemy
//	    position: [4, 0.5, 4]
//	    script: patrol
type SceneLayout struct {
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec 一个实体的初始状态
// 省略的向量字段使用零值（size 为 1，color 为白色）。
type EntitySpec struct {
	Kind     string    `yaml:"kind"`
	Name     string    `yaml:"name"`
	Tag      string    `yaml:"tag,omitempty"`   // 覆盖种类的默认分类标签
	Asset    string    `yaml:"asset,omitempty"` // 渲染资源键
	Position []float32 `yaml:"position,omitempty"`
	Size     []float32 `yaml:"size,omitempty"`
	Rotation []float32 `yaml:"rotation,omitempty"` // 欧拉角（度）
	Color    []float32 `yaml:"color,omitempty"`
	Collider []float32 `yaml:"collider,omitempty"` // 碰撞盒尺寸，省略时等于 1x1x1
	Script   string    `yaml:"script,omitempty"`   // Lua 行为名
}

// ParseSceneLayout 解析并校验场景布局
func ParseSceneLayout(data []byte) (*SceneLayout, error) {
	var layout SceneLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse scene layout: %w", err)
	}
	for i, e := range layout.Entities {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return &layout, nil
}

// LoadSceneLayout 从文件系统读取场景布局
func LoadSceneLayout(fsys fs.FS, path string) (*SceneLayout, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene layout %s: %w", path, err)
	}
	layout, err := ParseSceneLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

func (e EntitySpec) validate() error {
	if !knownKinds[e.Kind] {
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	if e.Name == "" {
		return fmt.Errorf("%s without name", e.Kind)
	}
	for field, v := range map[string][]float32{
		"position": e.Position,
		"size":     e.Size,
		"rotation": e.Rotation,
		"collider": e.Collider,
	} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("%s: %s needs 3 components, got %d", e.Name, field, len(v))
		}
	}
	if len(e.Color) != 0 && len(e.Color) != 4 {
		return fmt.Errorf("%s: color needs 4 components, got %d", e.Name, len(e.Color))
	}
	return nil
}

// Pos 位置
func (e EntitySpec) Pos() mgl32.Vec3 { return vec3(e.Position, mgl32.Vec3{}) }

// Scale 尺寸，省略时为 (1,1,1)
func (e EntitySpec) Scale() mgl32.Vec3 { return vec3(e.Size, mgl32.Vec3{1, 1, 1}) }

// Rotate 欧拉角（弧度）
func (e EntitySpec) Rotate() mgl32.Vec3 {
	deg := vec3(e.Rotation, mgl32.Vec3{})
	return mgl32.Vec3{mgl32.DegToRad(deg[0]), mgl32.DegToRad(deg[1]), mgl32.DegToRad(deg[2])}
}

// ColliderSize 碰撞盒尺寸，省略时为 (1,1,1)
func (e EntitySpec) ColliderSize() mgl32.Vec3 { return vec3(e.Collider, mgl32.Vec3{1, 1, 1}) }

// Tint 颜色，省略时为白色
func (e EntitySpec) Tint() mgl32.Vec4 {
	if len(e.Color) != 4 {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return mgl32.Vec4{e.Color[0], e.Color[1], e.Color[2], e.Color[3]}
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}
