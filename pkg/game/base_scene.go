package game

import (
	"errors"
	"fmt"

	"github.com/decker502/skillaction/pkg/ecs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTag 分类标签超出范围
var ErrInvalidTag = errors.New("game: invalid entity tag")

// maxCleanupPasses 单帧内清扫的最大轮数
// 销毁钩子中再次 Destroy 的实体会在下一轮被清扫；超过上限的留到下一帧。
const maxCleanupPasses = 8

// BaseScene 场景基类：实体分桶、碰撞体注册表、身份表和每帧协议
//
// 每帧 Update 的固定顺序：
//  1. 更新：逐桶、逐实体调用 Update（长度快照，本帧新增的实体不会被访问）
//  2. 碰撞：对注册表中每个无序对 (i<j) 测试一次，跳过未激活的碰撞体，
//     命中时双方各收到一次 OnColliderHit
//  3. 清理碰撞体注册表（所属实体待销毁）
//  4. 清理身份表（实体待销毁）
//  5. 清理实体：OnDestroy -> Uninit -> 释放槽位
//
// 3、4 在 5 释放实体之前读取实体的销毁标记。
type BaseScene struct {
	name      string
	sessionID string

	buckets    [ecs.TagMax][]ecs.Object
	colliders  []ecs.Collider
	identities *ecs.IdentityRegistry
	entities   *ecs.EntityManager

	services ecs.Services
	debug    DebugService
	logger   *zap.Logger

	fade  bool
	frame uint64
}

// NewBaseScene 创建场景基类
//
// 参数：
//   - name: 场景名（日志字段）
//   - svc: 注入给实体的服务（World 字段由场景自己填写）
//   - debug: 调试服务，可为 nil
func NewBaseScene(name string, svc ecs.Services, debug DebugService) *BaseScene {
	if svc.Logger == nil {
		svc.Logger = zap.NewNop()
	}
	if debug == nil {
		debug = NoDebug{}
	}
	s := &BaseScene{
		name:       name,
		sessionID:  uuid.NewString(),
		identities: ecs.NewIdentityRegistry(),
		entities:   ecs.NewEntityManager(),
		debug:      debug,
	}
	s.logger = svc.Logger.With(zap.String("scene", name), zap.String("session", s.sessionID))
	svc.Logger = s.logger
	svc.World = s
	s.services = svc
	return s
}

// AddEntity 创建实体并加入场景
//
// 顺序：分配 -> 追加到桶尾 -> 分配身份 -> Init -> 设置标签 -> 收集碰撞体。
// Init 失败时实体被标记为待销毁（下一次清扫时移除）并返回错误。
func AddEntity[T any, PT interface {
	*T
	ecs.Object
}](s *BaseScene, tag ecs.Tag, name string) (PT, error) {
	return AddEntityFunc[T, PT](s, tag, name, nil)
}

// AddEntityFunc 与 AddEntity 相同，但在 Init 之前调用 setup 填写实体的初始字段
// （资源键、位置、脚本名等 Init 需要读取的数据）。setup 可为 nil。
func AddEntityFunc[T any, PT interface {
	*T
	ecs.Object
}](s *BaseScene, tag ecs.Tag, name string, setup func(PT)) (PT, error) {
	if !tag.Valid() {
		return nil, fmt.Errorf("add %q: %w (%d)", name, ErrInvalidTag, tag)
	}

	obj := PT(new(T))
	handle := s.entities.CreateEntity(obj)
	s.buckets[tag] = append(s.buckets[tag], obj)
	id := s.identities.Assign(name, handle)
	if err := ecs.Attach(obj, id, handle, &s.services); err != nil {
		return nil, err
	}
	if setup != nil {
		setup(obj)
	}

	if err := obj.Init(); err != nil {
		obj.Base().Destroy()
		ecs.Place(obj, tag)
		s.logger.Error("entity init failed",
			zap.Stringer("entity", id),
			zap.Stringer("tag", tag),
			zap.Error(err))
		return nil, fmt.Errorf("init %s: %w", id, err)
	}
	ecs.Place(obj, tag)

	colliders := ecs.GetComponents[ecs.Collider](obj.Base())
	s.colliders = append(s.colliders, colliders...)

	s.logger.Debug("entity added",
		zap.Stringer("entity", id),
		zap.Stringer("tag", tag),
		zap.Int("colliders", len(colliders)))
	return obj, nil
}

// Update 执行一帧：更新 -> 碰撞 -> 清理
func (s *BaseScene) Update() {
	s.frame++

	for tag := range s.buckets {
		n := len(s.buckets[tag])
		for i := 0; i < n; i++ {
			s.buckets[tag][i].Update()
		}
	}

	s.detectCollisions()
	s.cleanup()
}

func (s *BaseScene) detectCollisions() {
	n := len(s.colliders)
	for i := 0; i < n; i++ {
		a := s.colliders[i]
		if !a.Active() {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := s.colliders[j]
			if !b.Active() {
				continue
			}
			if a.IsHit(b) {
				a.Owner().Self().OnColliderHit(b, a.Tag())
				b.Owner().Self().OnColliderHit(a, b.Tag())
			}
		}
	}
}

func (s *BaseScene) cleanup() {
	for pass := 0; pass < maxCleanupPasses; pass++ {
		if !s.hasPending() {
			return
		}
		s.purgeColliders()
		s.purgeIdentities()
		s.sweepEntities()
	}
	if s.hasPending() {
		s.logger.Warn("destroy chain exceeded cleanup passes, continuing next frame",
			zap.Int("passes", maxCleanupPasses))
	}
}

func (s *BaseScene) hasPending() bool {
	for tag := range s.buckets {
		for _, obj := range s.buckets[tag] {
			if obj.Base().IsDestroy() {
				return true
			}
		}
	}
	return false
}

func (s *BaseScene) purgeColliders() {
	kept := s.colliders[:0]
	for _, c := range s.colliders {
		if !c.Owner().IsDestroy() {
			kept = append(kept, c)
		}
	}
	clear(s.colliders[len(kept):])
	s.colliders = kept
}

func (s *BaseScene) purgeIdentities() {
	s.identities.RemoveIf(func(h ecs.EntityID) bool {
		obj, ok := s.entities.GetEntity(h)
		return ok && obj.Base().IsDestroy()
	})
}

// sweepEntities 先把保留的实体装回桶里，再对移除的实体执行销毁钩子，
// 钩子中新增的实体追加到已装好的桶尾。
func (s *BaseScene) sweepEntities() {
	var removed []ecs.Object
	for tag := range s.buckets {
		bucket := s.buckets[tag]
		kept := make([]ecs.Object, 0, len(bucket))
		for _, obj := range bucket {
			if obj.Base().IsDestroy() {
				removed = append(removed, obj)
				continue
			}
			kept = append(kept, obj)
		}
		s.buckets[tag] = kept
	}

	for _, obj := range removed {
		g := obj.Base()
		ecs.Release(obj)
		s.entities.ReleaseEntity(g.Handle())
		s.logger.Debug("entity released", zap.Stringer("entity", g.ID()))
	}
}

// Draw 推送相机矩阵，按桶顺序绘制实体；调试服务允许时绘制碰撞体线框
func (s *BaseScene) Draw() {
	r := s.services.Renderer
	if r != nil && s.services.Camera != nil {
		r.SetCamera(s.services.Camera.View(), s.services.Camera.Projection())
	}

	for tag := range s.buckets {
		for _, obj := range s.buckets[tag] {
			obj.Draw()
		}
	}

	if s.debug.CollisionVisible() {
		for _, c := range s.colliders {
			c.Draw()
		}
	}
	if r != nil {
		r.FlushLines()
	}
}

// Uninit 卸载所有实体（只调用 Uninit，不触发销毁钩子）
func (s *BaseScene) Uninit() {
	for tag := range s.buckets {
		for _, obj := range s.buckets[tag] {
			ecs.Teardown(obj)
		}
		s.buckets[tag] = nil
	}
	s.colliders = nil
	s.identities.Clear()
	s.entities.Clear()
	s.logger.Debug("scene uninitialized")
}

// GetEntity 按身份查找实体，找不到返回 nil
func (s *BaseScene) GetEntity(id ecs.ObjectID) ecs.Object {
	h, ok := s.identities.Lookup(id)
	if !ok {
		return nil
	}
	return s.Resolve(h)
}

// GetEntityByName 按名称查找最早创建的同名实体，找不到返回 nil
func (s *BaseScene) GetEntityByName(name string) ecs.Object {
	h, ok := s.identities.LookupName(name)
	if !ok {
		return nil
	}
	return s.Resolve(h)
}

// Resolve 解析句柄；实体已释放时返回 nil
func (s *BaseScene) Resolve(h ecs.EntityID) ecs.Object {
	obj, ok := s.entities.GetEntity(h)
	if !ok {
		return nil
	}
	return obj
}

// GetFirstOfType 按桶顺序返回第一个类型为 T 的实体
func GetFirstOfType[T any](s *BaseScene) (T, bool) {
	for tag := range s.buckets {
		for _, obj := range s.buckets[tag] {
			if v, ok := obj.(T); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// IDs 按创建顺序返回所有身份
func (s *BaseScene) IDs() []ecs.ObjectID { return s.identities.IDs() }

// Bucket 返回某个标签桶的快照
func (s *BaseScene) Bucket(tag ecs.Tag) []ecs.Object {
	if !tag.Valid() {
		return nil
	}
	return append([]ecs.Object(nil), s.buckets[tag]...)
}

// Colliders 返回碰撞体注册表的快照
func (s *BaseScene) Colliders() []ecs.Collider {
	return append([]ecs.Collider(nil), s.colliders...)
}

// EntityCount 存活实体数量（含待销毁）
func (s *BaseScene) EntityCount() int { return s.entities.Count() }

// SetFade 设置过渡进行中标记
func (s *BaseScene) SetFade(fade bool) { s.fade = fade }

// IsFade 过渡是否进行中
func (s *BaseScene) IsFade() bool { return s.fade }

// Frame 已执行的 Update 次数
func (s *BaseScene) Frame() uint64 { return s.frame }

// Name 场景名
func (s *BaseScene) Name() string { return s.name }

// SessionID 场景实例 ID（日志字段）
func (s *BaseScene) SessionID() string { return s.sessionID }

// Services 注入给实体的服务
func (s *BaseScene) Services() *ecs.Services { return &s.services }

// Logger 场景日志器
func (s *BaseScene) Logger() *zap.Logger { return s.logger }

// SetDebug 替换调试服务
func (s *BaseScene) SetDebug(debug DebugService) {
	if debug == nil {
		debug = NoDebug{}
	}
	s.debug = debug
}
