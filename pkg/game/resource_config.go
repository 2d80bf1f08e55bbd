package game

import (
	"fmt"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the asset manifest loaded from YAML.
//
// Structure:
//
//	version: "1.0"
//	base_path: textures
//	groups:
//	  game:
//	    textures: [...]
//	    models: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for texture files, relative to the manifest
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
type ResourceGroup struct {
	Textures []TextureResource `yaml:"textures"`
	Models   []ModelResource   `yaml:"models"`
}

// TextureResource 纹理定义：文件或纯色
//
// Examples:
//
//	File:
//	  - id: Player
//	    path: player.png
//
//	Solid color (no file):
//	  - id: Field
//	    color: [0.35, 0.6, 0.3, 1]
//	    width: 8
//	    height: 8
type TextureResource struct {
	ID     string    `yaml:"id"`
	Path   string    `yaml:"path,omitempty"`
	Color  []float32 `yaml:"color,omitempty"`  // RGBA 0~1
	Width  int       `yaml:"width,omitempty"`  // 纯色纹理尺寸，默认 4
	Height int       `yaml:"height,omitempty"` // 纯色纹理尺寸，默认 4
}

// ModelResource 模型定义：内置形状或内联三角网格
//
// Examples:
//
//	Built-in cube:
//	  - id: Enemy
//	    shape: cube
//	    texture: EnemySkin
//
//	Inline mesh (x, y, z, u, v per vertex):
//	  - id: Ramp
//	    texture: Stone
//	    vertices: [[0,0,0,0,0], [1,0,0,1,0], [1,1,1,1,1]]
//	    indices: [0, 1, 2]
type ModelResource struct {
	ID       string      `yaml:"id"`
	Shape    string      `yaml:"shape,omitempty"`
	Texture  string      `yaml:"texture,omitempty"`
	Vertices [][]float32 `yaml:"vertices,omitempty"`
	Indices  []uint16    `yaml:"indices,omitempty"`
}

// ShapeCube 内置单位立方体（边长 1，中心在原点）
const ShapeCube = "cube"

const defaultSolidSize = 4

// ParseResourceConfig 解析并校验清单
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	for name, g := range cfg.Groups {
		for _, tex := range g.Textures {
			if err := tex.validate(); err != nil {
				return nil, fmt.Errorf("group %s: %w", name, err)
			}
		}
		for _, m := range g.Models {
			if err := m.validate(); err != nil {
				return nil, fmt.Errorf("group %s: %w", name, err)
			}
		}
	}
	return &cfg, nil
}

func (t TextureResource) validate() error {
	if t.ID == "" {
		return fmt.Errorf("texture without id")
	}
	if (t.Path == "") == (len(t.Color) == 0) {
		return fmt.Errorf("texture %s: exactly one of path or color is required", t.ID)
	}
	if len(t.Color) != 0 && len(t.Color) != 4 {
		return fmt.Errorf("texture %s: color needs 4 components, got %d", t.ID, len(t.Color))
	}
	return nil
}

// SolidSize 纯色纹理尺寸（未配置时取默认值）
func (t TextureResource) SolidSize() (int, int) {
	w, h := t.Width, t.Height
	if w <= 0 {
		w = defaultSolidSize
	}
	if h <= 0 {
		h = defaultSolidSize
	}
	return w, h
}

func (m ModelResource) validate() error {
	if m.ID == "" {
		return fmt.Errorf("model without id")
	}
	switch {
	case m.Shape == ShapeCube:
		return nil
	case m.Shape != "":
		return fmt.Errorf("model %s: unknown shape %q", m.ID, m.Shape)
	}
	if len(m.Vertices) == 0 || len(m.Indices)%3 != 0 || len(m.Indices) == 0 {
		return fmt.Errorf("model %s: inline mesh needs vertices and a multiple of 3 indices", m.ID)
	}
	for i, v := range m.Vertices {
		if len(v) != 5 {
			return fmt.Errorf("model %s: vertex %d needs 5 values (x y z u v)", m.ID, i)
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("model %s: index %d out of range", m.ID, idx)
		}
	}
	return nil
}

// texturePath 纹理文件相对清单根目录的路径（fs.FS 路径使用 /）
func texturePath(manifestDir, basePath, rel string) string {
	return path.Join(manifestDir, basePath, rel)
}

// cubeMesh 生成单位立方体：每个面 4 个顶点，UV 铺满整张纹理
func cubeMesh() ([]mgl32.Vec3, []mgl32.Vec2, []uint16) {
	faces := [6][4]mgl32.Vec3{
		{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}, // -Z
		{{0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}},     // +Z
		{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}}, // -X
		{{0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}},     // +X
		{{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},     // +Y
		{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}}, // -Y
	}
	uvs := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	var pos []mgl32.Vec3
	var uv []mgl32.Vec2
	var idx []uint16
	for _, f := range faces {
		base := uint16(len(pos))
		for k := range f {
			pos = append(pos, f[k])
			uv = append(uv, uvs[k])
		}
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return pos, uv, idx
}
