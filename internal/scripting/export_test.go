package scripting

import lua "github.com/yuin/gopher-lua"

// CallHook exposes single-hook calls to the external test package.
func (m *Manager) CallHook(hook string, args ...any) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret, _ := m.callLocked(hook, args...)
	return ret, nil
}
