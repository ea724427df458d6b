package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game logic.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory tree. Missing directories are skipped; the engine still works
// with no scripts at all, every hook falling back to its Go default.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "economy", "ai"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
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

// OnPlayerConnect calls the Lua on_player_connect hook and returns the
// message of the day for the character. Falls back to fallbackMOTD when the
// hook is absent or misbehaves.
func (e *Engine) OnPlayerConnect(characterName, fallbackMOTD string) string {
	fn := e.vm.GetGlobal("on_player_connect")
	if fn == lua.LNil {
		return fallbackMOTD
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(characterName)); err != nil {
		e.log.Warn("on_player_connect failed", zap.Error(err))
		return fallbackMOTD
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if s, ok := ret.(lua.LString); ok && s != "" {
		return string(s)
	}
	return fallbackMOTD
}

// CalcBounty calls the Lua calc_bounty hook for a destroyed ship. Falls
// back to the loot table's isk drop.
func (e *Engine) CalcBounty(shipType string, iskDrop float64) float64 {
	fn := e.vm.GetGlobal("calc_bounty")
	if fn == lua.LNil {
		return iskDrop
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LString(shipType), lua.LNumber(iskDrop),
	); err != nil {
		e.log.Warn("calc_bounty failed", zap.Error(err))
		return iskDrop
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok && float64(n) >= 0 {
		return float64(n)
	}
	return iskDrop
}
