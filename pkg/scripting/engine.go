// Package scripting wraps a gopher-lua VM that drives scripted entity behaviors.
package scripting

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrBehaviorNotFound is returned when no script defined the requested behavior table.
var ErrBehaviorNotFound = errors.New("scripting: behavior not found")

// Host is the entity side of a script instance.
type Host interface {
	Position() (x, y, z float32)
	SetPosition(x, y, z float32)
	Name() string
	Destroy()
	Frame() uint64
}

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	loaded []string
}

// NewEngine creates an empty Lua engine with the standard libraries opened.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log.Named("lua")}
	// log(msg) 写入引擎日志
	vm.SetGlobal("log", vm.NewFunction(func(L *lua.LState) int {
		e.log.Info(L.CheckString(1))
		return 0
	}))
	return e
}

// LoadFS runs every .lua file directly under dir. A missing dir is not an error.
func (e *Engine) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read script dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := path.Join(dir, entry.Name())
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if err := e.LoadString(strings.TrimSuffix(entry.Name(), ".lua"), string(src)); err != nil {
			return err
		}
	}
	return nil
}

// LoadString runs a chunk of Lua source. name is used for logging only.
func (e *Engine) LoadString(name, src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	e.loaded = append(e.loaded, name)
	e.log.Debug("loaded lua script", zap.String("script", name))
	return nil
}

// Loaded returns the names of loaded scripts in load order.
func (e *Engine) Loaded() []string {
	return e.loaded
}

// HasBehavior reports whether a global table with this name exists.
func (e *Engine) HasBehavior(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LTable)
	return ok
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Instance binds one behavior table to one host.
type Instance struct {
	engine   *Engine
	behavior *lua.LTable
	self     *lua.LTable
	name     string
}

// NewInstance creates a self table for host, bound to the behavior table named behavior.
func (e *Engine) NewInstance(behavior string, host Host) (*Instance, error) {
	tbl, ok := e.vm.GetGlobal(behavior).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBehaviorNotFound, behavior)
	}

	self := e.vm.NewTable()
	e.vm.SetFuncs(self, map[string]lua.LGFunction{
		// self:pos() -> x, y, z
		"pos": func(L *lua.LState) int {
			x, y, z := host.Position()
			L.Push(lua.LNumber(x))
			L.Push(lua.LNumber(y))
			L.Push(lua.LNumber(z))
			return 3
		},
		// self:set_pos(x, y, z)
		"set_pos": func(L *lua.LState) int {
			host.SetPosition(float32(L.CheckNumber(2)), float32(L.CheckNumber(3)), float32(L.CheckNumber(4)))
			return 0
		},
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(host.Name()))
			return 1
		},
		"destroy": func(L *lua.LState) int {
			host.Destroy()
			return 0
		},
		"frame": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.Frame()))
			return 1
		},
	})

	return &Instance{engine: e, behavior: tbl, self: self, name: behavior}, nil
}

// Call invokes behavior.method(self). A behavior without that method is a no-op.
func (in *Instance) Call(method string) error {
	fn, ok := in.behavior.RawGetString(method).(*lua.LFunction)
	if !ok {
		return nil
	}
	vm := in.engine.vm
	if err := vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, in.self); err != nil {
		return fmt.Errorf("%s.%s: %w", in.name, method, err)
	}
	return nil
}

// Field reads a field of the self table as a Lua value string, "" when missing.
func (in *Instance) Field(name string) string {
	v := in.self.RawGetString(name)
	if v == lua.LNil {
		return ""
	}
	return v.String()
}

// Behavior returns the bound behavior name.
func (in *Instance) Behavior() string {
	return in.name
}
