package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, body string) {
	t.Helper()
	full := filepath.Join(dir, sub)
	assert.NoError(t, os.MkdirAll(full, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(full, name), []byte(body), 0o644))
}

func TestHooksFallBackWithoutScripts(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	assert.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "Fly safe.", e.OnPlayerConnect("Alice", "Fly safe."))
	assert.Equal(t, 500.0, e.CalcBounty("merlin", 500))
}

func TestHooksRunLoadedScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "motd.lua", `
function on_player_connect(name)
  return "Welcome to Oruze, " .. name
end
`)
	writeScript(t, dir, "economy", "bounty.lua", `
function calc_bounty(ship_type, isk_drop)
  if ship_type == "merlin" then
    return isk_drop * 1.5
  end
  return isk_drop
end
`)

	e, err := NewEngine(dir, zap.NewNop())
	assert.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "Welcome to Oruze, Alice", e.OnPlayerConnect("Alice", "Fly safe."))
	assert.Equal(t, 750.0, e.CalcBounty("merlin", 500))
	assert.Equal(t, 500.0, e.CalcBounty("shuttle", 500))
}

func TestMisbehavingHookFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "motd.lua", `
function on_player_connect(name)
  error("scripting accident")
end
`)

	e, err := NewEngine(dir, zap.NewNop())
	assert.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "Fly safe.", e.OnPlayerConnect("Alice", "Fly safe."))
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai", "broken.lua", `function unterminated(`)

	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
