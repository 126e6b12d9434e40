package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/taxogen/schema"
)

func strPtr(s string) *string { return &s }

func bound(v float64, literal string) *schema.Bound {
	return &schema.Bound{Value: v, Literal: literal}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   schema.FieldType
		want string
	}{
		{"string", "*string"},
		{"int", "*int"},
		{"float", "*float64"},
		{"boolean", "*bool"},
		{"timestamp", "*float64"},
		{"string[]", "*[]*string"},
		{"float[]", "*[]*float64"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.in))
		})
	}
}

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{"plain string", schema.Field{Type: "string"}, ""},
		{"enum", schema.Field{Type: "string", Enum: []string{"host", "web_service", "api", "domain"}}, "omitempty,oneof=host web_service api domain"},
		{"ipv4 regex", schema.Field{Type: "string", Regex: strPtr(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)}, "omitempty,ipv4"},
		{"ipv4 with doubled backslashes", schema.Field{Type: "string", Regex: strPtr(`^(?:[0-9]+\\.){3}[0-9]+$`)}, "omitempty,ipv4"},
		{"email regex", schema.Field{Type: "string", Regex: strPtr(`^[a-z]+@[a-z]+\.com$ # Email`)}, "omitempty,email"},
		{"url regex", schema.Field{Type: "string", Regex: strPtr(`^https?://[^ ]+$`)}, "omitempty,url"},
		{"unknown regex dropped", schema.Field{Type: "string", Regex: strPtr(`^CVE-\d{4}-\d+$`)}, ""},
		{"enum wins over regex", schema.Field{Type: "string", Enum: []string{"a"}, Regex: strPtr(`^https?://`)}, "omitempty,oneof=a"},
		{"float range", schema.Field{Type: "float", Min: bound(0, "0.0"), Max: bound(10, "10.0")}, "omitempty,min=0.0,max=10.0"},
		{"int range", schema.Field{Type: "int", Min: bound(1, "1"), Max: bound(65535, "65535")}, "omitempty,min=1,max=65535"},
		{"int range from float literals", schema.Field{Type: "int", Min: bound(0, "0.0"), Max: bound(65535, "65535.0")}, "omitempty,min=0,max=65535"},
		{"fractional int bounds round inward", schema.Field{Type: "int[]", Min: bound(0.5, "0.5"), Max: bound(9.5, "9.5")}, "omitempty,dive,omitempty,min=1,max=9"},
		{"only max", schema.Field{Type: "timestamp", Max: bound(5, "5")}, "omitempty,max=5"},
		{"array elements", schema.Field{Type: "int[]", Min: bound(1, "1")}, "omitempty,dive,omitempty,min=1"},
		{"array without rules", schema.Field{Type: "string[]"}, ""},
		{"enum with spaces", schema.Field{Type: "string", Enum: []string{"web service", "api"}}, "omitempty,oneof='web service' api"},
		{"enum with comma", schema.Field{Type: "string", Enum: []string{"a,b"}}, "omitempty,oneof=a0x2Cb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTag(tt.field))
		})
	}
}

func TestClassifyRegex(t *testing.T) {
	assert.Equal(t, "ipv4", ClassifyRegex(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`))
	assert.Equal(t, "email", ClassifyRegex(`EMAIL_PATTERN`))
	assert.Equal(t, "url", ClassifyRegex(`^https?://example`))
	assert.Equal(t, "", ClassifyRegex(`https?://example`))
	assert.Equal(t, "", ClassifyRegex(`^[a-f0-9]{32}$`))
}

func TestProject(t *testing.T) {
	v := Project(schema.Field{Name: "ip_address", Type: "string", Regex: strPtr(`^[a-z]+$`)})
	assert.Equal(t, "IpAddress", v.GoName)
	assert.Equal(t, "*string", v.TypeName)
	assert.Equal(t, "", v.ValidateTag)
	assert.True(t, v.DroppedRegex)

	v = Project(schema.Field{Name: "entity_uuid", Type: "string"})
	assert.Equal(t, "EntityUuid", v.GoName)
	assert.False(t, v.DroppedRegex)
}
