package sheet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

const aquaYAML = `
id: aqua
name: Aqua
type: character
system:
  abilities:
    strength:     {base: 6, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
    dexterity:    {base: 9, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
    agility:      {base: 6, abilityBonus: 1, otherBonus: 2, classBonus: 0, abilityScoreBonus: 0}
    intelligence: {base: 1, abilityBonus: 1, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
    perception:   {base: 6, abilityBonus: 0, otherBonus: 0, classBonus: 1, abilityScoreBonus: 0}
    mind:         {base: 12, abilityBonus: 0, otherBonus: 0, classBonus: 2, abilityScoreBonus: 1}
    luck:         {base: 0, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
  stats:
    combat:
      hitCheck: {hitModifier: 1, skillModifier: 0, otherModifier: 0}
      movement: {movementModifier: 1, skillModifier: 0, otherModifier: 0}
    special:
      magicCheck: {skillModifier: 2, otherModifier: 0}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDecode_ParsesWireNames(t *testing.T) {
	s, err := sheet.Decode([]byte(aquaYAML))
	require.NoError(t, err)

	assert.Equal(t, "aqua", s.ID)
	assert.Equal(t, sheet.TypeCharacter, s.Type)
	require.Len(t, s.System.Abilities, 7)
	assert.Equal(t, 12, s.System.Abilities[sheet.Mind].Base)
	assert.Equal(t, 2, s.System.Abilities[sheet.Mind].ClassBonus)
	assert.Equal(t, 1, s.System.Stats.Combat.HitCheck.HitModifier)
	assert.Equal(t, 2, s.System.Stats.Special.MagicCheck.SkillModifier)

	require.NoError(t, sheet.Derive(s))
	assert.Equal(t, 7, s.System.Abilities[sheet.Mind].CheckBonus)
	assert.Equal(t, 4, s.System.Stats.Combat.HitCheck.Total)
	assert.Equal(t, 8, s.System.Stats.Combat.Movement.Total)
	assert.Equal(t, 2, s.System.Stats.Special.MagicCheck.Total)
}

func TestDecode_MissingFieldIsMalformed(t *testing.T) {
	_, err := sheet.Decode([]byte(`
type: npc
system:
  abilities:
    luck: {base: 3, abilityBonus: 0, otherBonus: 0, classBonus: 0}
`))
	var malformed *sheet.MalformedAbilityError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, sheet.Luck, malformed.Ability)
	assert.Equal(t, "abilityScoreBonus", malformed.Field)
}

func TestDecode_EmptyAbilityIsMalformed(t *testing.T) {
	_, err := sheet.Decode([]byte(`
type: npc
system:
  abilities:
    mind:
`))
	var malformed *sheet.MalformedAbilityError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "base", malformed.Field)
}

func TestDecode_NullOrNonNumericFieldIsMalformed(t *testing.T) {
	for name, entry := range map[string]string{
		"null":   "{base: ~, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}",
		"string": "{base: 3, abilityBonus: lots, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}",
		"map":    "{base: 3, abilityBonus: 0, otherBonus: {x: 1}, classBonus: 0, abilityScoreBonus: 0}",
	} {
		t.Run(name, func(t *testing.T) {
			s, err := sheet.Decode([]byte("type: npc\nsystem:\n  abilities:\n    strength: " + entry + "\n"))
			assert.Nil(t, s)
			var malformed *sheet.MalformedAbilityError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, sheet.Strength, malformed.Ability)
		})
	}
}

func TestDecode_NPCWithoutStatsEncodesNoStats(t *testing.T) {
	s, err := sheet.Decode([]byte(`
type: npc
system:
  abilities:
    strength: {base: 12, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
`))
	require.NoError(t, err)
	require.NoError(t, sheet.Derive(s))
	assert.Nil(t, s.System.Stats)

	out, err := sheet.Encode(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "stats")
	assert.Contains(t, string(out), "checkBonus: 4")
}

func TestDecode_UnknownAbility(t *testing.T) {
	_, err := sheet.Decode([]byte(`
type: npc
system:
  abilities:
    charisma: {base: 3, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
`))
	var malformed *sheet.MalformedAbilityError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "charisma", malformed.Ability)
	assert.Empty(t, malformed.Field)
}

func TestDecode_InvalidYAML(t *testing.T) {
	_, err := sheet.Decode([]byte("type: [unterminated"))
	assert.Error(t, err)
}

func TestEncode_RoundTripsDerivedFields(t *testing.T) {
	s, err := sheet.Decode([]byte(aquaYAML))
	require.NoError(t, err)
	require.NoError(t, sheet.Derive(s))

	out, err := sheet.Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "checkBonus: 7")

	again, err := sheet.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoadSheets_AssignsMissingIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "aqua.yaml"), aquaYAML)
	writeFile(t, filepath.Join(dir, "frog.yml"), `
name: Giant Frog
type: npc
system:
  abilities:
    strength: {base: 12, abilityBonus: 0, otherBonus: 0, classBonus: 0, abilityScoreBonus: 0}
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	sheets, err := sheet.LoadSheets(dir)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "aqua", sheets[0].ID)
	assert.Equal(t, "Giant Frog", sheets[1].Name)
	assert.NotEmpty(t, sheets[1].ID)
}

func TestLoadSheets_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
type: npc
system:
  abilities:
    luck: {base: 1}
`)
	_, err := sheet.LoadSheets(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadSheets_MissingDir(t *testing.T) {
	_, err := sheet.LoadSheets(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
