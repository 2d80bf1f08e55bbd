package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DebugSettings 调试界面设置，跨会话保存
type DebugSettings struct {
	ShowCollision bool `yaml:"showCollision"` // 绘制碰撞体线框
	ShowHierarchy bool `yaml:"showHierarchy"` // 显示实体身份列表
	ShowGrid      bool `yaml:"showGrid"`      // 绘制地面网格和坐标轴
	DebugCamera   bool `yaml:"debugCamera"`   // 使用自由调试相机
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DebugSettings {
	return &DebugSettings{
		ShowCollision: false,
		ShowHierarchy: false,
		ShowGrid:      true,
		DebugCamera:   false,
	}
}

// SettingsManager 设置管理器
// 负责调试设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DebugSettings
	saved        bool // 设置来自存储而不是默认值
	logger       *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "debug"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - logger: 日志器，可为 nil
//
// 加载失败不是致命错误，记录警告后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager, logger *zap.Logger) *SettingsManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logger.Named("settings"),
	}
	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	sm.saved = false
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = loaded
	sm.saved = true
	sm.logger.Debug("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	sm.saved = true
	sm.logger.Debug("settings saved")
	return nil
}

// Saved 当前设置是否来自存储（或已保存过）
func (sm *SettingsManager) Saved() bool {
	return sm.saved
}

// GetSettings 获取当前设置
// 返回的指针可以直接修改，需调用 Save() 持久化
func (sm *SettingsManager) GetSettings() *DebugSettings {
	return sm.settings
}
