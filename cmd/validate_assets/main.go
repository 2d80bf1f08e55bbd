// validate_assets 检查引擎配置、资源清单、场景布局和脚本是否一致
//
// 用法：
//
//	go run ./cmd/validate_assets -dir .
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/decker502/skillaction/pkg/config"
	"github.com/decker502/skillaction/pkg/game"
	"github.com/decker502/skillaction/pkg/scripting"
)

var (
	rootDir    = flag.String("dir", ".", "包含 assets/ config/ scripts/ 的目录")
	configPath = flag.String("config", "config/engine.toml", "引擎配置路径（相对 -dir）")
)

func main() {
	flag.Parse()

	problems, err := validate(os.DirFS(*rootDir), *configPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	for _, p := range problems {
		fmt.Printf("❌ %s\n", p)
	}
	if len(problems) > 0 {
		fmt.Printf("❌ 共 %d 个问题\n", len(problems))
		os.Exit(1)
	}
	fmt.Printf("✅ 配置、清单、布局和脚本一致\n")
}

// validate 返回交叉引用问题；文件缺失或解析失败直接返回 error
func validate(fsys fs.FS, cfgPath string) ([]string, error) {
	cfg, err := config.LoadEngineConfig(fsys, cfgPath)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, cfg.Assets.Manifest)
	if err != nil {
		return nil, fmt.Errorf("读取资源清单失败: %w", err)
	}
	manifest, err := game.ParseResourceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Assets.Manifest, err)
	}

	layout, err := config.LoadSceneLayout(fsys, cfg.Scene.Layout)
	if err != nil {
		return nil, err
	}

	engine := scripting.NewEngine(nil)
	defer engine.Close()
	if err := engine.LoadFS(fsys, cfg.Assets.Scripts); err != nil {
		return nil, err
	}

	keys := make(map[string]string) // 资源键 -> 分组
	var problems []string
	groups := make([]string, 0, len(manifest.Groups))
	for name := range manifest.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		g := manifest.Groups[name]
		for _, tex := range g.Textures {
			problems = addKey(problems, keys, tex.ID, name)
		}
		for _, m := range g.Models {
			problems = addKey(problems, keys, m.ID, name)
			if m.Texture != "" {
				if _, ok := keys[m.Texture]; !ok {
					problems = append(problems, fmt.Sprintf("模型 %s 引用了未定义（或定义在其后）的纹理 %q", m.ID, m.Texture))
				}
			}
		}
	}

	players := 0
	for i, e := range layout.Entities {
		if e.Kind == config.KindPlayer {
			players++
		}
		if e.Asset != "" {
			if _, ok := keys[e.Asset]; !ok {
				problems = append(problems, fmt.Sprintf("布局第 %d 项 %s 的资源 %q 不在清单中", i+1, e.Name, e.Asset))
			}
		}
		if e.Script != "" && !engine.HasBehavior(e.Script) {
			problems = append(problems, fmt.Sprintf("布局第 %d 项 %s 的脚本 %q 未定义", i+1, e.Name, e.Script))
		}
	}
	if players == 0 {
		problems = append(problems, "布局中没有玩家")
	}
	return problems, nil
}

func addKey(problems []string, keys map[string]string, id, group string) []string {
	if prev, ok := keys[id]; ok {
		return append(problems, fmt.Sprintf("资源键 %q 在分组 %s 和 %s 中重复", id, prev, group))
	}
	keys[id] = group
	return problems
}
