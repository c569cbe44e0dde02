package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"ringback/backend/industry"
	"ringback/backend/setup"
)

func TestWriteCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, "table"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(industry.List())+1)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.True(t, strings.HasPrefix(lines[1], "HVAC"))

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, "json"))
	var entries []industry.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, industry.List(), entries)

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, "yaml"))
	entries = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, industry.List(), entries)

	assert.Error(t, writeCatalog(&buf, "xml"))
}

func TestClassifyCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"classify", "--areas", "a,b,c"}, want: "automatic (AUTOMATIC)\n"},
		{args: []string{"classify", "--areas", "a,b,c,d"}, want: "manual (TOO_MANY_SERVICE_AREAS)\n"},
		{args: []string{"classify", "--custom-script", "--areas", "a,b,c,d"}, want: "manual (CUSTOM_SCRIPT)\n"},
		{args: []string{"classify", "--multi-location", "--custom-script"}, want: "manual (MULTI_LOCATION)\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			areas, customScript, multiLocation, outputFormat = nil, false, false, "table"
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetArgs(tt.args)
			require.NoError(t, rootCmd.Execute())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteVerdictJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVerdict(&buf, "json", setup.Verdict{Manual: true, Reason: setup.ReasonCustomScript}))
	assert.JSONEq(t, `{"requires_manual_setup":true,"reason":"CUSTOM_SCRIPT"}`, buf.String())
}
