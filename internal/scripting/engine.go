package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM hosting entity behavior functions.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory is an error: a behavior system without its scripts
// must fail at construction, before it ever enters a world.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load behavior scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// HasBehavior reports whether a global Lua function with this name exists.
func (e *Engine) HasBehavior(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// BehaviorContext is the entity snapshot packed into the behavior's argument
// table.
type BehaviorContext struct {
	ID     uint64
	DT     float64
	X, Y   float64
	DX, DY float64
	Props  map[string]float64
}

// BehaviorResult carries the behavior's writes back to the caller.
type BehaviorResult struct {
	DX, DY float64
	Props  map[string]float64
}

// CallBehavior invokes the named global function with the packed context and
// decodes its returned table. The behavior may return nil to keep the
// entity's state unchanged.
func (e *Engine) CallBehavior(name string, ctx BehaviorContext) (BehaviorResult, error) {
	out := BehaviorResult{DX: ctx.DX, DY: ctx.DY, Props: ctx.Props}

	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return out, fmt.Errorf("lua behavior %q not found", name)
	}

	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(ctx.ID))
	t.RawSetString("dt", lua.LNumber(ctx.DT))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("dx", lua.LNumber(ctx.DX))
	t.RawSetString("dy", lua.LNumber(ctx.DY))

	props := e.vm.NewTable()
	for k, v := range ctx.Props {
		props.RawSetString(k, lua.LNumber(v))
	}
	t.RawSetString("props", props)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return out, fmt.Errorf("lua behavior %q: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return out, nil
	}

	if v := rt.RawGetString("dx"); v != lua.LNil {
		out.DX = float64(lua.LVAsNumber(v))
	}
	if v := rt.RawGetString("dy"); v != lua.LNil {
		out.DY = float64(lua.LVAsNumber(v))
	}
	if pt, ok := rt.RawGetString("props").(*lua.LTable); ok {
		pt.ForEach(func(k, v lua.LValue) {
			out.Props[lua.LVAsString(k)] = float64(lua.LVAsNumber(v))
		})
	}
	return out, nil
}
