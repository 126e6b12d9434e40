package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ip_address", "IpAddress"},
		{"entity_uuid", "EntityUuid"},
		{"vuln_id", "VulnId"},
		{"version", "Version"},
		{"HAS_PORT", "HasPort"},
		{"DISCOVERED", "Discovered"},
		{"ipv4_addr", "Ipv4Addr"},
		{"kebab-case-name", "KebabCaseName"},
		{"__leading", "Leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToKebabCase(t *testing.T) {
	assert.Equal(t, "pentagi-taxonomy", ToKebabCase("pentagi_taxonomy"))
	assert.Equal(t, "taxonomy", ToKebabCase("Taxonomy"))
}
