package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	input := `Title: Summer 2023
Thumbnail: beach.jpg
Authors: Jane
    John

A week at the sea.
`

	meta, body, err := ParseMeta(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, "Summer 2023", meta.First("title"))
	assert.Equal(t, "beach.jpg", meta.First("Thumbnail"))
	assert.Equal(t, []string{"Jane", "John"}, meta["authors"])
	assert.Equal(t, "A week at the sea.", body)
}

func TestParseMeta_NoHeader(t *testing.T) {
	meta, body, err := ParseMeta(strings.NewReader("Just some words about the trip.\nMore words."))

	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "Just some words about the trip.\nMore words.", body)
}

func TestParseMeta_DashDelimited(t *testing.T) {
	input := "---\ntitle: Hiking\n---\nbody"

	meta, body, err := ParseMeta(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, "Hiking", meta.First("title"))
	assert.Equal(t, "body", body)
}

func TestMetaFirst_Missing(t *testing.T) {
	assert.Equal(t, "", Meta{}.First("thumbnail"))
	assert.Equal(t, "", Meta{"thumbnail": {}}.First("thumbnail"))
}
