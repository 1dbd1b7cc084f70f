package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMetadata(t *testing.T) {
	text := "## Overview\nA song about endings.\n\n## Core Theme\nLoss and acceptance.\n\nGenre: Pop\nRelease Year: 1999"

	genre, year, cleaned := ExtractMetadata(text)

	assert.Equal(t, "Pop", genre)
	assert.Equal(t, 1999, year)
	assert.NotContains(t, cleaned, "Genre:")
	assert.NotContains(t, cleaned, "Release Year:")
	assert.Contains(t, cleaned, "## Core Theme")
	assert.Contains(t, cleaned, "Loss and acceptance.")
}

func TestExtractMetadataMissingTokens(t *testing.T) {
	text := "## Overview\nNothing is known about this song."

	genre, year, cleaned := ExtractMetadata(text)

	assert.Empty(t, genre)
	assert.Zero(t, year)
	assert.Equal(t, text, cleaned)
}

func TestExtractMetadataLooseFormatting(t *testing.T) {
	text := "Some analysis.\n  genre:  Indie Rock  \n  release year: circa 2004"

	genre, year, cleaned := ExtractMetadata(text)

	assert.Equal(t, "Indie Rock", genre)
	assert.Equal(t, 2004, year)
	assert.Equal(t, "Some analysis.", cleaned)
}

func TestExtractMetadataFirstGenreWins(t *testing.T) {
	text := "Genre: Jazz\nBody text.\nGenre: Blues\nRelease Year: 1959"

	genre, year, cleaned := ExtractMetadata(text)

	assert.Equal(t, "Jazz", genre)
	assert.Equal(t, 1959, year)
	assert.Equal(t, "Body text.", cleaned)
}
