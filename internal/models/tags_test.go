package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagsNormalizes(t *testing.T) {
	tags := NewTags([]string{" b", "a ", "", "b", "  ", "B"})
	assert.Equal(t, Tags{"B", "a", "b"}, tags)
}

func TestNewTagsSplitsDelimiter(t *testing.T) {
	assert.Equal(t, Tags{"go", "web"}, NewTags([]string{"web,go", "go"}))
}

func TestNewTagsEmpty(t *testing.T) {
	tags := NewTags(nil)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTagsStorageForm(t *testing.T) {
	v, err := Tags{"web", "go", "go"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "go,web", v)

	var scanned Tags
	require.NoError(t, scanned.Scan([]byte("web, go ,,")))
	assert.Equal(t, Tags{"go", "web"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestTagsContains(t *testing.T) {
	tags := NewTags([]string{"x", "y"})
	assert.True(t, tags.Contains("y"))
	assert.False(t, tags.Contains("z"))
}
