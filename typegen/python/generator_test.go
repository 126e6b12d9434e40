package python

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

func loadFixture(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Load(filepath.Join("..", "..", "taxonomy", "v2", "entities.yml"))
	require.NoError(t, err)
	return s
}

func generate(t *testing.T, s *schema.Schema, opts typegen.Options) map[string]string {
	t.Helper()
	artifacts, err := NewGenerator().Generate(s, opts)
	require.NoError(t, err)
	files := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		files[a.Path] = string(a.Content)
	}
	return files
}

func TestGenerateFiles(t *testing.T) {
	files := generate(t, loadFixture(t), typegen.Options{})

	var paths []string
	for p := range files {
		paths = append(paths, p)
	}
	assert.ElementsMatch(t, []string{
		"pyproject.toml",
		"taxonomy/__init__.py",
		"taxonomy/nodes.py",
		"taxonomy/edges.py",
		"taxonomy/entity_map.py",
	}, paths)
}

func TestGenerateNodes(t *testing.T) {
	nodes := generate(t, loadFixture(t), typegen.Options{})["taxonomy/nodes.py"]

	assert.True(t, strings.HasPrefix(nodes, "# Code generated by taxogen from entities.yml. DO NOT EDIT.\n"))
	assert.Contains(t, nodes, "from pydantic import BaseModel, Field\nfrom typing import Literal\n")
	assert.Contains(t, nodes, "class Target(BaseModel):\n    \"\"\"A target system being assessed during penetration testing\"\"\"\n")
	assert.Contains(t, nodes, "    target_type: Literal['host', 'web_service', 'api', 'domain'] | None = Field(None, description='Classification of target')\n")
	assert.Contains(t, nodes, "    risk_score: float | None = Field(None, description='Calculated risk score', ge=0.0, le=10.0)\n")
	assert.Contains(t, nodes, "    port_number: int | None = Field(None, description='Port number', ge=1, le=65535)\n")
	assert.Contains(t, nodes, "    exploitable: bool | None = Field(None, description='Whether the vulnerability is exploitable')\n")
	assert.Contains(t, nodes, "    discovered_at: float | None = Field(None, description='Discovery timestamp')\n")
	// ip_address regex has no pydantic counterpart here
	assert.Contains(t, nodes, "    ip_address: str | None = Field(None, description='IP address of the target')\n")

	// classes are separated by two blank lines
	assert.Contains(t, nodes, "\n\n\nclass Port(BaseModel):")
	assert.True(t, strings.HasSuffix(nodes, ")\n"))
}

func TestGenerateEdges(t *testing.T) {
	edges := generate(t, loadFixture(t), typegen.Options{})["taxonomy/edges.py"]

	assert.Contains(t, edges, "class HasPort(BaseModel):\n    \"\"\"A target has a port\"\"\"\n")
	assert.Contains(t, edges, "class Affects(BaseModel):")
	assert.Contains(t, edges, "    confidence: float | None = Field(None, description='Confidence score', ge=0.0, le=1.0)\n")
	assert.Contains(t, edges, "    method: Literal['active', 'passive'] | None = Field(None, description='Discovery method')\n")
}

func TestGenerateEntityMap(t *testing.T) {
	m := generate(t, loadFixture(t), typegen.Options{})["taxonomy/entity_map.py"]

	assert.Contains(t, m, "from .nodes import Target, Port, Vulnerability\n")
	assert.Contains(t, m, "from .edges import HasPort, Discovered, Affects\n")
	assert.Contains(t, m, "ENTITY_TYPES = {\n    'Target': Target,\n    'Port': Port,\n    'Vulnerability': Vulnerability,\n}\n")
	assert.Contains(t, m, "EDGE_TYPES = {\n    'HAS_PORT': HasPort,\n    'DISCOVERED': Discovered,\n    'AFFECTS': Affects,\n}\n")
	assert.Contains(t, m, "EDGE_TYPE_MAP = {\n    ('Target', 'Port'): ['HAS_PORT'],\n    ('Vulnerability', 'Target'): ['AFFECTS'],\n}\n")
}

func TestGenerateEntityMapMergesPairs(t *testing.T) {
	s := loadFixture(t)
	s.Relationships = append(s.Relationships, schema.Relationship{
		Index:  3,
		Source: "Target",
		Target: "Port",
		Edges:  []string{"DISCOVERED", "HAS_PORT"},
	})
	m := generate(t, s, typegen.Options{})["taxonomy/entity_map.py"]
	assert.Contains(t, m, "    ('Target', 'Port'): ['HAS_PORT', 'DISCOVERED'],\n")
}

func TestGenerateInit(t *testing.T) {
	init := generate(t, loadFixture(t), typegen.Options{})["taxonomy/__init__.py"]

	assert.Contains(t, init, "TAXONOMY_VERSION = 2\n")
	assert.Contains(t, init, "from .entity_map import EDGE_TYPE_MAP, EDGE_TYPES, ENTITY_TYPES\n")
	assert.Contains(t, init, "    \"Vulnerability\",\n")
	assert.Contains(t, init, "    \"Affects\",\n]\n")
}

func TestGeneratePyproject(t *testing.T) {
	files := generate(t, loadFixture(t), typegen.Options{
		Python: typegen.PythonOptions{Package: "pentest_taxonomy", Pydantic: ">=2.5"},
	})
	raw := files["pyproject.toml"]
	assert.True(t, strings.HasPrefix(raw, "# Code generated by taxogen"))
	assert.Contains(t, files, "pentest_taxonomy/nodes.py")

	var doc struct {
		BuildSystem struct {
			BuildBackend string `toml:"build-backend"`
		} `toml:"build-system"`
		Project struct {
			Name           string   `toml:"name"`
			Version        string   `toml:"version"`
			RequiresPython string   `toml:"requires-python"`
			Dependencies   []string `toml:"dependencies"`
		} `toml:"project"`
	}
	_, err := toml.Decode(raw, &doc)
	require.NoError(t, err)
	assert.Equal(t, "hatchling.build", doc.BuildSystem.BuildBackend)
	assert.Equal(t, "pentest-taxonomy", doc.Project.Name)
	assert.Equal(t, "2.0.0", doc.Project.Version)
	assert.Equal(t, ">=3.10", doc.Project.RequiresPython)
	assert.Equal(t, []string{"pydantic>=2.5"}, doc.Project.Dependencies)
}

func TestGenerateProvenanceHeader(t *testing.T) {
	files := generate(t, loadFixture(t), typegen.Options{
		Provenance: typegen.Provenance{Commit: "abcdef012345"},
	})
	for path, content := range files {
		assert.Contains(t, content, "# Source version: abcdef012345\n", path)
	}
}

func TestGenerateRejectsBadPackage(t *testing.T) {
	_, err := NewGenerator().Generate(loadFixture(t), typegen.Options{
		Python: typegen.PythonOptions{Package: "pentest-taxonomy"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Python package name")
}

func TestGenerateArrayBoundsImportAnnotated(t *testing.T) {
	s := &schema.Schema{Version: 1, Nodes: []schema.Entity{{
		Kind:   schema.KindNode,
		Name:   "Scan",
		Fields: []schema.Field{{Name: "ports", Type: "int[]", Min: bound(1, "1"), Max: bound(65535, "65535")}},
	}}}
	files := generate(t, s, typegen.Options{})

	assert.Contains(t, files["taxonomy/nodes.py"], "from typing import Annotated, Literal\n")
	assert.Contains(t, files["taxonomy/nodes.py"], "    ports: list[Annotated[int, Field(ge=1, le=65535)]] | None = Field(None)\n")
	assert.Contains(t, files["taxonomy/nodes.py"], "    \"\"\"Scan node.\"\"\"\n")
	assert.NotContains(t, files["taxonomy/entity_map.py"], "from .edges")
	assert.Contains(t, files["taxonomy/entity_map.py"], "EDGE_TYPES = {\n}\n")
}
