package config

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/decker502/skillaction/pkg/utils"
)

// EngineConfig 引擎启动配置（TOML）
//
// 缺省字段使用 defaults() 中的值，配置文件只需写要覆盖的项。
type EngineConfig struct {
	Window  WindowConfig  `toml:"window"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
	Assets  AssetsConfig  `toml:"assets"`
	Scene   SceneConfig   `toml:"scene"`
	Player  PlayerConfig  `toml:"player"`
	Camera  CameraConfig  `toml:"camera"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"` // 固定逻辑帧率
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug / info / warn / error
	Format string `toml:"format"` // console / json
}

type DebugConfig struct {
	Enabled       bool `toml:"enabled"`        // 是否启用调试界面（F1~F5）
	StartPaused   bool `toml:"start_paused"`   // 启动时暂停
	ShowCollision bool `toml:"show_collision"` // 没有保存的设置时的初始值
	ShowHierarchy bool `toml:"show_hierarchy"` // 没有保存的设置时的初始值
}

type AssetsConfig struct {
	Manifest string `toml:"manifest"` // 资源清单（嵌入文件系统内的路径）
	Scripts  string `toml:"scripts"`  // Lua 脚本目录
}

type SceneConfig struct {
	Start      string `toml:"start"`       // 启动场景名
	Layout     string `toml:"layout"`      // 场景布局 YAML
	FadeFrames int    `toml:"fade_frames"` // 场景切换的淡入淡出帧数
}

type PlayerConfig struct {
	Speed      float32 `toml:"speed"`       // 键盘移动速度（每帧）
	MoveFrames int     `toml:"move_frames"` // 点击移动的插值帧数
	Ease       string  `toml:"ease"`        // 点击移动的缓动曲线，见 utils.EasingNames
}

type CameraConfig struct {
	Radius     float32 `toml:"radius"`      // 游戏相机到玩家的距离
	Pitch      float32 `toml:"pitch"`       // 俯角（度）
	FollowRate float32 `toml:"follow_rate"` // 每帧向目标靠近的比例 0~1
	FlySpeed   float32 `toml:"fly_speed"`   // 调试相机移动速度
}

// ParseEngineConfig 在默认值之上解析 TOML
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse engine config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEngineConfig 从文件系统读取配置
func LoadEngineConfig(fsys fs.FS, path string) (*EngineConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseEngineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *EngineConfig {
	return defaults()
}

func defaults() *EngineConfig {
	return &EngineConfig{
		Window: WindowConfig{
			Title:  "Skill Action",
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			Enabled: true,
		},
		Assets: AssetsConfig{
			Manifest: "assets/manifest.yaml",
			Scripts:  "scripts",
		},
		Scene: SceneConfig{
			Start:      "game",
			Layout:     "config/scene.yaml",
			FadeFrames: 30,
		},
		Player: PlayerConfig{
			Speed:      0.1,
			MoveFrames: 30,
			Ease:       "out_quart",
		},
		Camera: CameraConfig{
			Radius:     14.14,
			Pitch:      45,
			FollowRate: 0.1,
			FlySpeed:   0.2,
		},
	}
}

func (c *EngineConfig) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Camera.FollowRate <= 0 || c.Camera.FollowRate > 1 {
		return fmt.Errorf("camera.follow_rate must be in (0, 1], got %v", c.Camera.FollowRate)
	}
	if c.Scene.FadeFrames <= 0 {
		return fmt.Errorf("scene.fade_frames must be positive, got %d", c.Scene.FadeFrames)
	}
	if c.Player.MoveFrames <= 0 {
		return fmt.Errorf("player.move_frames must be positive, got %d", c.Player.MoveFrames)
	}
	if _, ok := utils.EasingByName(c.Player.Ease); !ok {
		return fmt.Errorf("player.ease: unknown easing %q (one of %s)", c.Player.Ease, strings.Join(utils.EasingNames(), ", "))
	}
	return nil
}

// Aspect 窗口宽高比
func (w WindowConfig) Aspect() float32 {
	return float32(w.Width) / float32(w.Height)
}
