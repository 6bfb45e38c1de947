package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		msg      string
		category string
	}{
		{"yaml: line 3: mapping values are not allowed in this context", "YAML_SYNTAX"},
		{"section plex must be a mapping", "SECTION_SHAPE"},
		{"section radarr: enabled must be a bool", "ENABLED_FLAG"},
		{"library entry Movies must be a mapping", "LIBRARY_SHAPE"},
		{"profile name is required", "MISSING_FIELD"},
		{"something else entirely", "GENERAL_ERROR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.category, Categorize(tt.msg), tt.msg)
	}
}

func TestExtractLineNumber(t *testing.T) {
	f := NewDiagnosticFormatter("config.yml", nil)
	assert.Equal(t, 12, f.ExtractLineNumber("yaml: line 12: did not find expected key"))
	assert.Equal(t, 0, f.ExtractLineNumber("no position here"))
}

func TestFormatAsJSON(t *testing.T) {
	f := NewDiagnosticFormatter("config.yml", []byte("plex:\n  timeout: nope\n"))
	f.OutputFormat = "json"
	f.PrintSectionError("plex", "section plex must be a mapping", 1)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(f.FormatAsJSON()), &result))
	assert.Equal(t, false, result["success"])
	assert.Equal(t, float64(1), result["error_count"])

	diags, ok := result["diagnostics"].([]interface{})
	require.True(t, ok)
	require.Len(t, diags, 1)
	diag := diags[0].(map[string]interface{})
	assert.Equal(t, "SECTION_SHAPE", diag["category"])
	assert.Equal(t, "plex", diag["section"])
	assert.NotEmpty(t, diag["context"])
}
