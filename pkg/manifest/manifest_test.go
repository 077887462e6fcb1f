package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

const twoDocs = `apiVersion: v1
kind: ConfigMap
metadata:
  name: first
---
apiVersion: v1
kind: LimitRange
metadata:
  name: second
`

func TestParseMultiDocument(t *testing.T) {
	set, err := Parse(strings.NewReader(twoDocs))
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	// Input order is the contract.
	var first struct {
		Kind string `yaml:"kind"`
	}
	require.NoError(t, set.Documents()[0].Decode(&first))
	assert.Equal(t, "ConfigMap", first.Kind)

	require.NoError(t, set.Documents()[1].Decode(&first))
	assert.Equal(t, "LimitRange", first.Kind)
}

func TestParseSkipsEmptyDocuments(t *testing.T) {
	set, err := Parse(strings.NewReader("---\n---\nkind: ConfigMap\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("kind: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeManifest))
}

func TestValidate(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		err := NewSet().Validate()
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeManifest))
	})

	t.Run("non-mapping document", func(t *testing.T) {
		set, err := Parse(strings.NewReader("kind: ConfigMap\n---\n- just\n- a\n- list\n"))
		require.NoError(t, err)

		err = set.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeManifest))
		assert.Contains(t, err.Error(), "not a mapping")
	})

	t.Run("valid set", func(t *testing.T) {
		set, err := Parse(strings.NewReader(twoDocs))
		require.NoError(t, err)
		require.NoError(t, set.Validate())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.yaml")
	pathB := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(pathA, []byte(twoDocs), 0644))
	require.NoError(t, os.WriteFile(pathB, []byte("kind: Namespace\n"), 0644))

	set, err := Load(pathA, pathB)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeManifest))
}

func TestSourceShapes(t *testing.T) {
	var sources []Source
	input := `
- manifests/limit-range.yaml
- apiVersion: v1
  kind: ConfigMap
  metadata:
    name: inline
`
	require.NoError(t, yaml.Unmarshal([]byte(input), &sources))
	require.Len(t, sources, 2)

	assert.False(t, sources[0].IsInline())
	assert.Equal(t, "manifests/limit-range.yaml", sources[0].Path)
	assert.True(t, sources[1].IsInline())
}

func TestSourceInvalidShape(t *testing.T) {
	var sources []Source
	err := yaml.Unmarshal([]byte("- [a, list]\n"), &sources)
	require.Error(t, err)
}

func TestSourceShapesJSON(t *testing.T) {
	var sources []Source
	input := `["manifests/limit-range.yaml", {"apiVersion": "v1", "kind": "ConfigMap", "metadata": {"name": "inline"}}]`
	require.NoError(t, json.Unmarshal([]byte(input), &sources))
	require.Len(t, sources, 2)

	assert.Equal(t, "manifests/limit-range.yaml", sources[0].Path)
	assert.True(t, sources[1].IsInline())
}

func TestResolveSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.yaml"), []byte(twoDocs), 0644))

	var sources []Source
	input := `
- m.yaml
- apiVersion: v1
  kind: ConfigMap
  metadata:
    name: inline
`
	require.NoError(t, yaml.Unmarshal([]byte(input), &sources))

	set, err := ResolveSources(sources, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestResolveInlineSources(t *testing.T) {
	var sources []Source
	require.NoError(t, yaml.Unmarshal([]byte("- kind: ConfigMap\n"), &sources))

	set, err := ResolveInlineSources(sources)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	require.NoError(t, yaml.Unmarshal([]byte("- some/path.yaml\n"), &sources))
	_, err = ResolveInlineSources(sources)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}
