package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/konosuba/internal/game/dice"
	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

// Roll data hooks, keyed by sheet type.
var rollDataHooks = map[string]string{
	sheet.TypeCharacter: "character_roll_data",
	sheet.TypeNPC:       "npc_roll_data",
}

// Manager owns one sandboxed LState and dispatches roll data hooks into it.
//
// All access to the LState is serialized by mu, so a Manager is safe for
// concurrent use.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil; instLimit <= 0 uses
// DefaultInstructionLimit.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Manager{roller: roller, logger: logger, instLimit: instLimit}
}

// Load creates a fresh VM, registers the konosuba module and executes every
// *.lua file in scriptDir in lexicographic order. The previous VM, if any,
// is replaced only when loading succeeds.
//
// Precondition: scriptDir must be a readable directory.
func (m *Manager) Load(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.registerModules(L)
	for _, path := range luaFiles {
		if err := limited(L, m.instLimit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.mu.Unlock()

	m.logger.Debug("scripting: loaded scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// callLocked calls the named Lua global with args converted on the manager's
// VM. Missing VMs and undefined hooks return LNil; Lua runtime errors are
// logged at Warn and never propagated. The converted arguments are returned
// so callers can read back in-place table mutations.
//
// Precondition: m.mu is held.
func (m *Manager) callLocked(hook string, args ...any) (lua.LValue, []lua.LValue) {
	L := m.state
	if L == nil {
		return lua.LNil, nil
	}
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = toLua(L, a)
	}
	err := limited(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, largs
}

// Augment implements sheet.Augmenter. It calls character_roll_data or
// npc_roll_data with the roll data as a table. Keys of a returned table are
// merged into data; a hook returning nothing may instead mutate its argument.
//
// Postcondition: Returns data extended with hook output, or data unchanged
// when no hook applies or the hook fails.
func (m *Manager) Augment(sheetType string, data sheet.RollData) (sheet.RollData, error) {
	hook, ok := rollDataHooks[sheetType]
	if !ok {
		return data, nil
	}

	m.mu.Lock()
	ret, largs := m.callLocked(hook, map[string]any(data))
	var extra map[string]any
	switch t := ret.(type) {
	case *lua.LTable:
		extra = tableToMap(t)
	default:
		if len(largs) == 1 {
			if arg, ok := largs[0].(*lua.LTable); ok {
				extra = tableToMap(arg)
			}
		}
	}
	m.mu.Unlock()

	for k, v := range extra {
		data[k] = v
	}
	return data, nil
}

// Close releases the VM. Subsequent hook calls are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
