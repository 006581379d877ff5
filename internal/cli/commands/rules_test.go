package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRulesCmd(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRulesListText(t *testing.T) {
	out := runRulesCmd(t, "--format", "text")
	assert.Contains(t, out, "Integrity Rules")
	for _, id := range []string{"SC01", "SC02", "SC03", "SC04", "SC05", "SC06", "SC07"} {
		assert.Contains(t, out, id)
	}
}

func TestRulesListJSON(t *testing.T) {
	out := runRulesCmd(t, "--format", "json")

	var parsed struct {
		Rules []struct {
			ID    string `json:"id"`
			Group string `json:"group"`
		} `json:"rules"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 7, parsed.Count)
	assert.Equal(t, "SC01", parsed.Rules[0].ID, "rules must be sorted by ID")
}

func TestRulesListGroupFilter(t *testing.T) {
	out := runRulesCmd(t, "--group", "cardinality", "--format", "markdown")
	assert.Contains(t, out, "SC06")
	assert.Contains(t, out, "SC07")
	assert.NotContains(t, out, "SC01")
}

func TestRulesShowDetail(t *testing.T) {
	out := runRulesCmd(t, "SC02", "--format", "markdown")
	assert.Contains(t, out, "SC02 - integrity.foreign_key_resolution")
	assert.Contains(t, out, "Why This Matters")
	assert.Contains(t, out, "Bad Example")
}

func TestRulesShowUnknown(t *testing.T) {
	cmd := NewRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"ZZ99"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
