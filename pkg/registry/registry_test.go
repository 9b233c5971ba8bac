package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	reg := Default()
	assert.Empty(t, reg.Validate())
	assert.Len(t, reg.Activities, 5)

	for _, taskType := range []string{
		"parse-guest-intent",
		"search-therapists",
		"calculate-matching-score",
		"rank-therapists",
		"generate-slot-grid",
	} {
		a, ok := reg.FindByTaskType(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.InputSchema)
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "matching.rank.therapists", TaskType: "rank-therapists", Timeout: "5s"},
		{ID: "matching.rank.therapists", TaskType: "rank-therapists"},
		{ID: "Bad-ID", Timeout: "soon", InputSchema: map[string]interface{}{"type": "array"}},
	}}

	errs := reg.Validate()
	assert.Len(t, errs, 6)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"a.b.c","taskType":"x"}]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	_, ok := reg.FindByTaskType("missing")
	assert.False(t, ok)
}

func TestSetField(t *testing.T) {
	reg := Default()

	require.NoError(t, reg.SetField("matching.rank.therapists", "timeout", "8s"))
	require.NoError(t, reg.SetField("matching.rank.therapists", "retries", "2"))
	a, _ := reg.FindByTaskType("rank-therapists")
	assert.Equal(t, "8s", a.Timeout)
	assert.Equal(t, 2, a.Retries)

	assert.Error(t, reg.SetField("matching.rank.therapists", "timeout", "later"))
	assert.Error(t, reg.SetField("matching.rank.therapists", "retries", "-1"))
	assert.Error(t, reg.SetField("matching.rank.therapists", "inputSchema", "{}"))
	assert.Error(t, reg.SetField("no.such.activity", "version", "2"))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := Default()
	require.NoError(t, reg.SetField("guest.intent.parse", "version", "1.1.0"))
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Validate())
	a, ok := loaded.FindByTaskType("parse-guest-intent")
	require.True(t, ok)
	assert.Equal(t, "1.1.0", a.Version)
	assert.Equal(t, reg.LastUpdated, loaded.LastUpdated)
}
