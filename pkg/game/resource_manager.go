package game

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"path"
	"sort"

	"github.com/decker502/skillaction/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxDecodeWorkers 并行解码纹理的 goroutine 上限
const maxDecodeWorkers = 4

// ResourceManager is responsible for centralized management of game assets.
// It loads textures and models listed in a YAML manifest and registers them
// in the renderer's AssetStore under string keys.
//
// Keys are loaded once: a key that is already registered is skipped, so
// loading the same manifest twice is harmless.
//
// Texture files are decoded in parallel; registration into the store happens
// on the calling goroutine after every decode has finished.
//
// Usage:
//
//	rm := NewResourceManager(store, logger)
//	if err := rm.LoadManifest(ctx, assetsFS, "manifest.yaml"); err != nil {
//	    logger.Fatal("load assets", zap.Error(err))
//	}
type ResourceManager struct {
	store  *render.AssetStore
	config *ResourceConfig
	logger *zap.Logger
}

// NewResourceManager creates a ResourceManager backed by the given store.
func NewResourceManager(store *render.AssetStore, logger *zap.Logger) *ResourceManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceManager{
		store:  store,
		logger: logger.Named("resources"),
	}
}

// Store returns the underlying asset store.
func (rm *ResourceManager) Store() *render.AssetStore {
	return rm.store
}

// Config returns the last loaded manifest, or nil.
func (rm *ResourceManager) Config() *ResourceConfig {
	return rm.config
}

type decodedTexture struct {
	res TextureResource
	img image.Image
}

// LoadManifest 读取清单并加载所有分组（分组按名称排序）
func (rm *ResourceManager) LoadManifest(ctx context.Context, fsys fs.FS, manifest string) error {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", manifest, err)
	}
	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", manifest, err)
	}
	rm.config = cfg

	names := make([]string, 0, len(cfg.Groups))
	for name := range cfg.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	dir := path.Dir(manifest)
	for _, name := range names {
		if err := rm.loadGroup(ctx, fsys, dir, name, cfg.Groups[name]); err != nil {
			return err
		}
	}
	rm.logger.Info("assets loaded",
		zap.String("manifest", manifest),
		zap.Int("groups", len(names)),
		zap.Int("assets", rm.store.Len()))
	return nil
}

func (rm *ResourceManager) loadGroup(ctx context.Context, fsys fs.FS, dir, name string, group ResourceGroup) error {
	decoded := make([]decodedTexture, len(group.Textures))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDecodeWorkers)
	for i, tex := range group.Textures {
		i, tex := i, tex
		if rm.store.Has(tex.ID) {
			continue
		}
		g.Go(func() error {
			img, err := rm.decodeTexture(ctx, fsys, dir, tex)
			if err != nil {
				return fmt.Errorf("group %s: %w", name, err)
			}
			decoded[i] = decodedTexture{res: tex, img: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, d := range decoded {
		if d.img == nil {
			continue
		}
		rm.store.AddTexture(d.res.ID, ebiten.NewImageFromImage(d.img))
	}

	for _, m := range group.Models {
		if rm.store.Has(m.ID) {
			rm.logger.Debug("model already loaded", zap.String("key", m.ID))
			continue
		}
		model, err := rm.buildModel(m)
		if err != nil {
			return fmt.Errorf("group %s: %w", name, err)
		}
		rm.store.AddModel(m.ID, model)
	}
	rm.logger.Debug("asset group loaded",
		zap.String("group", name),
		zap.Int("textures", len(group.Textures)),
		zap.Int("models", len(group.Models)))
	return nil
}

// decodeTexture 解码纹理文件或生成纯色图（只产生 image.Image，不触碰 ebiten）
func (rm *ResourceManager) decodeTexture(ctx context.Context, fsys fs.FS, dir string, tex TextureResource) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(tex.Color) == 4 {
		w, h := tex.SolidSize()
		return solidImage(w, h, tex.Color), nil
	}

	p := texturePath(dir, rm.config.BasePath, tex.Path)
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s (%s): %w", tex.ID, p, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s (%s): %w", tex.ID, p, err)
	}
	return img, nil
}

func (rm *ResourceManager) buildModel(m ModelResource) (*render.Model, error) {
	model := &render.Model{}
	if m.Texture != "" {
		img, ok := rm.store.Texture(m.Texture)
		if !ok {
			return nil, fmt.Errorf("model %s: texture %q: %w", m.ID, m.Texture, render.ErrAssetNotFound)
		}
		model.Texture = img
	}

	if m.Shape == ShapeCube {
		pos, uv, idx := cubeMesh()
		for i := range pos {
			model.Vertices = append(model.Vertices, render.MeshVertex{Pos: pos[i], UV: uv[i]})
		}
		model.Indices = idx
		return model, nil
	}

	for _, v := range m.Vertices {
		model.Vertices = append(model.Vertices, render.MeshVertex{
			Pos: [3]float32{v[0], v[1], v[2]},
			UV:  [2]float32{v[3], v[4]},
		})
	}
	model.Indices = append([]uint16(nil), m.Indices...)
	return model, nil
}

// Unload 释放所有已加载的资源
func (rm *ResourceManager) Unload() {
	n := rm.store.Len()
	rm.store.Clear()
	rm.config = nil
	rm.logger.Debug("assets unloaded", zap.Int("assets", n))
}

func solidImage(w, h int, c []float32) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	return img
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
