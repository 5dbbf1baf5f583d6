package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampedNameSanitizes(t *testing.T) {
	name := timestampedName("báo cáo (final).docx")
	assert.True(t, strings.HasSuffix(name, ".docx"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
	for _, r := range name {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.'
		assert.True(t, ok, "unexpected rune %q", r)
	}
}

func TestCopyFileWithTimestamp(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "manual.pdf")
	require.NoError(t, os.WriteFile(source, []byte("pdf bytes"), 0644))

	destDir := filepath.Join(dir, "uploads")
	destPath, err := CopyFileWithTimestamp(source, destDir)
	require.NoError(t, err)

	data, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
	assert.True(t, strings.HasPrefix(filepath.Base(destPath), "manual_"))
	assert.True(t, strings.HasSuffix(destPath, ".pdf"))
}
