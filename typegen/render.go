package typegen

import (
	"bytes"
	"io/fs"
	"strings"
	"text/template"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen/util"
)

// Data is what template-based targets render. F is the target's field
// projection.
type Data[F any] struct {
	Version int
	// Header holds the uncommented generated-file header lines
	Header      []string
	Nodes       []Entity[F]
	Edges       []Entity[F]
	EdgeTypeMap []schema.EdgePair
	Options     Options
}

// NewData prepares nodes and edges with project and collects everything a
// template needs.
func NewData[F any](s *schema.Schema, opts Options, project func(schema.Field) F) Data[F] {
	return Data[F]{
		Version:     s.Version,
		Header:      opts.HeaderLines(),
		Nodes:       Prepare(s.Nodes, project),
		Edges:       Prepare(s.Edges, project),
		EdgeTypeMap: s.EdgeTypeMap(),
		Options:     opts,
	}
}

// Funcs is the function map available to every target template.
var Funcs = template.FuncMap{
	"pascal": util.ToPascalCase,
	"kebab":  util.ToKebabCase,
	"join":   strings.Join,
	"trim":   strings.TrimSpace,
	"last": func(i, n int) bool {
		return i == n-1
	},
}

// ParseTemplates parses the templates matching pattern in fsys with Funcs
// and the target-specific extra functions.
func ParseTemplates(fsys fs.FS, pattern string, extra template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(Funcs)
	if extra != nil {
		t = t.Funcs(extra)
	}
	t, err := t.ParseFS(fsys, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse templates %s", pattern)
	}
	return t, nil
}

// Render executes the named template.
func Render(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", name)
	}
	return buf.Bytes(), nil
}
