package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_StringAndParse(t *testing.T) {
	assert.Equal(t, "Field", TagField.String())
	assert.Equal(t, "Invalid", TagMax.String())
	assert.False(t, TagMax.Valid())
	assert.True(t, TagUI.Valid())

	tag, ok := ParseTag("gameobject")
	assert.True(t, ok)
	assert.Equal(t, TagGameObject, tag)

	_, ok = ParseTag("Terrain")
	assert.False(t, ok)
}
