package corpus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCorpusIsComplete(t *testing.T) {
	c := Default()

	assert.NotEmpty(t, c.Profile.Name)
	assert.NotEmpty(t, c.Profile.Summary)
	assert.NotEmpty(t, c.CoreSkills)
	assert.NotEmpty(t, c.Skills)
	assert.NotEmpty(t, c.Work)
	assert.NotEmpty(t, c.Education)
	assert.NotEmpty(t, c.Certifications)
	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.Contact.Email)
}

func TestSectionNames(t *testing.T) {
	names := SectionNames()
	assert.Len(t, names, 8)
	for _, name := range names {
		assert.True(t, IsSection(name), "section %q should be recognized", name)
	}
}

func TestIsSection(t *testing.T) {
	assert.True(t, IsSection("skills"))
	assert.True(t, IsSection("  Work  "), "matching is case- and space-insensitive")
	assert.False(t, IsSection("resume"))
	assert.False(t, IsSection(""))
}

func TestPromptTextRoundTrips(t *testing.T) {
	c := Default()
	text := c.PromptText()

	var decoded Corpus
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, c.Profile.Name, decoded.Profile.Name)

	// every citable section key must appear in the serialized form
	for _, name := range SectionNames() {
		assert.Contains(t, text, `"`+name+`"`)
	}
}

func TestAllSkillsFlattens(t *testing.T) {
	c := &Corpus{Skills: []SkillCategory{
		{Category: "Languages", Skills: []string{"Go", "TypeScript"}},
		{Category: "Data", Skills: []string{"PostgreSQL"}},
	}}
	assert.Equal(t, []string{"Go", "TypeScript", "PostgreSQL"}, c.AllSkills())
}
