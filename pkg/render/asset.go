package render

import (
	"errors"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrAssetNotFound 资源键未注册
var ErrAssetNotFound = errors.New("render: asset not found")

// MeshVertex 网格顶点
type MeshVertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
}

// Model 三角形网格资源
type Model struct {
	Vertices []MeshVertex
	Indices  []uint16
	Texture  *ebiten.Image // 可为 nil，使用纯色
}

// AssetStore 资源表：字符串键 -> 纹理/模型
//
// 同一个键只能对应一种资源。纹理和模型共享键空间，
// 渲染组件在 SetKey 时通过 Has 检查键是否存在。
type AssetStore struct {
	textures map[string]*ebiten.Image
	models   map[string]*Model
}

// NewAssetStore 创建空的资源表
func NewAssetStore() *AssetStore {
	return &AssetStore{
		textures: make(map[string]*ebiten.Image),
		models:   make(map[string]*Model),
	}
}

// AddTexture 注册纹理，返回 false 表示键已存在（不覆盖）
func (s *AssetStore) AddTexture(key string, img *ebiten.Image) bool {
	if s.Has(key) {
		return false
	}
	s.textures[key] = img
	return true
}

// AddModel 注册模型，返回 false 表示键已存在（不覆盖）
func (s *AssetStore) AddModel(key string, m *Model) bool {
	if s.Has(key) {
		return false
	}
	s.models[key] = m
	return true
}

// Texture 按键查找纹理
func (s *AssetStore) Texture(key string) (*ebiten.Image, bool) {
	img, ok := s.textures[key]
	return img, ok
}

// Model 按键查找模型
func (s *AssetStore) Model(key string) (*Model, bool) {
	m, ok := s.models[key]
	return m, ok
}

// Has 检查键是否已注册
func (s *AssetStore) Has(key string) bool {
	if _, ok := s.textures[key]; ok {
		return true
	}
	_, ok := s.models[key]
	return ok
}

// Keys 返回所有已注册的键（排序后）
func (s *AssetStore) Keys() []string {
	keys := make([]string, 0, len(s.textures)+len(s.models))
	for k := range s.textures {
		keys = append(keys, k)
	}
	for k := range s.models {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len 返回已注册资源数量
func (s *AssetStore) Len() int {
	return len(s.textures) + len(s.models)
}

// Clear 释放所有资源
func (s *AssetStore) Clear() {
	for k, img := range s.textures {
		if img != nil {
			img.Deallocate()
		}
		delete(s.textures, k)
	}
	for k := range s.models {
		delete(s.models, k)
	}
}
