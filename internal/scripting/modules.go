package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/konosuba/internal/game/dice"
	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

// registerModules installs the konosuba global table:
//
//	konosuba.abilities            array of ability keys
//	konosuba.label(key)           localization key
//	konosuba.short_name(key)      three letter label
//	konosuba.score(b, ab, ob, cb, asb)
//	konosuba.log.debug|info|warn|error(msg)
//	konosuba.dice.roll(expr)      {dice=<sum of dice>, modifier=, total=}
func (m *Manager) registerModules(L *lua.LState) {
	mod := L.NewTable()

	abilities := L.NewTable()
	for _, k := range sheet.Abilities {
		abilities.Append(lua.LString(k))
	}
	mod.RawSetString("abilities", abilities)

	mod.RawSetString("label", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(sheet.Label(L.CheckString(1))))
		return 1
	}))
	mod.RawSetString("short_name", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(sheet.ShortName(L.CheckString(1))))
		return 1
	}))
	mod.RawSetString("score", L.NewFunction(func(L *lua.LState) int {
		a := sheet.Ability{
			Base:              L.CheckInt(1),
			AbilityBonus:      L.OptInt(2, 0),
			OtherBonus:        L.OptInt(3, 0),
			ClassBonus:        L.OptInt(4, 0),
			AbilityScoreBonus: L.OptInt(5, 0),
		}
		L.Push(lua.LNumber(sheet.Score(a)))
		return 1
	}))

	mod.RawSetString("log", m.logModule(L))
	mod.RawSetString("dice", m.diceModule(L))

	L.SetGlobal("konosuba", mod)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		t.RawSetString(name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return t
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("roll", L.NewFunction(func(L *lua.LState) int {
		e, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		r := m.roller.Roll(e)
		res := L.NewTable()
		res.RawSetString("dice", lua.LNumber(r.Total()-r.Modifier))
		res.RawSetString("modifier", lua.LNumber(r.Modifier))
		res.RawSetString("total", lua.LNumber(r.Total()))
		L.Push(res)
		return 1
	}))
	return t
}
