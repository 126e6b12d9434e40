package typegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
)

var fixturePath = filepath.Join("..", "taxonomy", "v2", "entities.yml")

// fakeTarget renders one file listing entity class names.
type fakeTarget struct {
	lang string
	err  error
	got  Options
}

func (f *fakeTarget) Language() string { return f.lang }
func (f *fakeTarget) Dir() string      { return f.lang }

func (f *fakeTarget) Generate(s *schema.Schema, opts Options) ([]Artifact, error) {
	f.got = opts
	if f.err != nil {
		return nil, f.err
	}
	var names []string
	for _, e := range Prepare(s.Nodes, func(schema.Field) struct{} { return struct{}{} }) {
		names = append(names, e.ClassName)
	}
	content := "# " + strings.Join(opts.HeaderLines(), "\n# ") + "\n" + strings.Join(names, "\n") + "\n"
	return []Artifact{{Path: "out/names.txt", Content: []byte(content)}}, nil
}

func TestBuildAndWrite(t *testing.T) {
	target := &fakeTarget{lang: "fake"}
	plan, err := Build(BuildConfig{SchemaPath: fixturePath, Targets: []Target{target}})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Schema.Version)
	assert.Equal(t, "entities.yml", target.got.SchemaFile)
	assert.Equal(t, "2.0.0", target.got.PackageVersion)
	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, "fake", plan.Outputs[0].Language)

	root := t.TempDir()
	written, err := plan.Write(root)
	require.NoError(t, err)
	want := filepath.Join(root, "fake", "out", "names.txt")
	assert.Equal(t, []string{want}, written)
	assert.Equal(t, written, plan.Outputs[0].Files(root))

	content, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Target\nPort\nVulnerability\n")
}

func TestBuildTargetFailureWritesNothing(t *testing.T) {
	ok := &fakeTarget{lang: "ok"}
	broken := &fakeTarget{lang: "broken", err: errors.New("template exploded")}

	plan, err := Build(BuildConfig{SchemaPath: fixturePath, Targets: []Target{ok, broken}})
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "failed to generate broken code")
	assert.Contains(t, err.Error(), "template exploded")
}

func TestBuildInvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.yml")
	writeFile(t, path, "version: 1\nnodes:\n  Target:\n    fields:\n      x:\n        type: decimal\n")

	target := &fakeTarget{lang: "fake"}
	_, err := Build(BuildConfig{SchemaPath: path, Targets: []Target{target}})
	require.Error(t, err)
	assert.Equal(t, schema.UnsupportedFieldType, schema.KindOf(err))
	assert.Empty(t, target.got.SchemaFile, "targets must not run on an invalid schema")
}

func TestBuildPackageVersion(t *testing.T) {
	target := &fakeTarget{lang: "fake"}
	_, err := Build(BuildConfig{
		SchemaPath: fixturePath,
		Targets:    []Target{target},
		Options:    Options{PackageVersion: "2.1.0-rc.1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2.1.0-rc.1", target.got.PackageVersion)

	_, err = Build(BuildConfig{
		SchemaPath: fixturePath,
		Targets:    []Target{target},
		Options:    Options{PackageVersion: "v2"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid package version "v2"`)
	assert.Contains(t, errors.FlattenHints(err), "semver")
}

func TestCheck(t *testing.T) {
	cfg := BuildConfig{
		SchemaPath: fixturePath,
		Targets:    []Target{&fakeTarget{lang: "fake"}},
		Options:    Options{Provenance: Provenance{Commit: "aaaaaaaaaaaa"}},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)

	root := t.TempDir()
	_, err = plan.Write(root)
	require.NoError(t, err)

	// a new commit alone does not make the output stale
	cfg.Options.Provenance.Commit = "bbbbbbbbbbbb"
	plan, err = Build(cfg)
	require.NoError(t, err)
	result, err := Check(plan, root)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	writeFile(t, filepath.Join(root, "fake", "out", "names.txt"), "edited\n")
	result, err = Check(plan, root)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{filepath.Join("out", "names.txt")}, result.Differences["fake"])
	assert.Contains(t, result.Diffs["fake/out/names.txt"], "edited")
}
