// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存它的引用，并可以叠加一个磁盘目录：同名文件优先从磁盘读取，
// 修改配置、布局和脚本时不需要重新编译。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Roots 允许访问的顶层目录
var Roots = []string{"assets", "config", "scripts"}

var (
	root        fs.FS
	initialized bool
)

// ErrNotInitialized 在 Init() 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 设置资源文件系统
//
// 参数：
//   - base: 嵌入的资源（通常是根目录的 embed.FS）
//   - overrideDir: 覆盖目录，为空时只使用 base
//
// 必须在 main() 开始时、任何资源加载之前调用
func Init(base fs.FS, overrideDir string) {
	if overrideDir != "" {
		root = overlay{os.DirFS(overrideDir), base}
	} else {
		root = base
	}
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// FS 返回资源文件系统视图，可直接传给 fs.ReadFile / fs.ReadDir
// 路径同样要求以 Roots 中的目录开头。
func FS() fs.FS {
	return resourceFS{}
}

type resourceFS struct{}

func (resourceFS) Open(name string) (fs.File, error) {
	return Open(name)
}

// overlay 多层文件系统：按顺序取第一个能打开的层
// 目录同样取第一个存在的层，不合并各层的目录内容。
type overlay []fs.FS

func (o overlay) Open(name string) (fs.File, error) {
	var err error
	for _, layer := range o {
		var f fs.File
		if f, err = layer.Open(name); err == nil {
			return f, nil
		}
	}
	return nil, err
}

// clean 标准化路径并检查前缀
func clean(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	for _, r := range Roots {
		if path == r || strings.HasPrefix(path, r+"/") {
			return path, nil
		}
	}
	return "", fmt.Errorf("unknown resource path prefix: %s (must start with one of %s)", path, strings.Join(Roots, ", "))
}

// Open 打开资源文件
func Open(path string) (fs.File, error) {
	p, err := clean(path)
	if err != nil {
		return nil, err
	}
	return root.Open(p)
}

// ReadFile 读取资源文件内容
func ReadFile(path string) ([]byte, error) {
	p, err := clean(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(root, p)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	p, err := clean(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(root, p)
}

// Stat 获取文件信息
func Stat(path string) (fs.FileInfo, error) {
	file, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}
