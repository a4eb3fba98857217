package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/testing/suite"
)

func newWordRepository(t *testing.T) (context.Context, WordRepository) {
	t.Helper()

	ctx, db := suite.NewSQLite(t)

	return ctx, NewWordRepository(db)
}

var testWords = []entity.Word{
	{Word: "kotlin", Hint: "Programming language", Definition: "A modern programming language."},
	{Word: "GIT", Hint: "Version control", Definition: "A distributed version control system."},
	{Word: "  ", Hint: "blank"},
}

func TestWordRepository_Import(t *testing.T) {
	ctx, words := newWordRepository(t)

	// When: words are imported twice
	added, err := words.Import(ctx, testWords)
	require.NoError(t, err)

	again, err := words.Import(ctx, testWords)
	require.NoError(t, err)

	// Then: blanks and duplicates are skipped
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, again)

	count, err := words.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWordRepository_ImportUnguessable(t *testing.T) {
	ctx, words := newWordRepository(t)

	// When: some words carry symbols, spaces or accents
	added, err := words.Import(ctx, []entity.Word{
		{Word: "C++", Hint: "Language"},
		{Word: "new york", Hint: "City"},
		{Word: "café", Hint: "Drink"},
		{Word: " rust ", Hint: "Language"},
	})

	// Then: only the plain word is stored
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	stored, err := words.RandomWords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "RUST", stored[0].Word)
}

func TestWordRepository_RandomWord(t *testing.T) {
	t.Run("RandomWord", func(t *testing.T) {
		ctx, words := newWordRepository(t)
		_, err := words.Import(ctx, testWords[:1])
		require.NoError(t, err)

		word, err := words.RandomWord(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.Word{
			Word:       "KOTLIN",
			Hint:       "Programming language",
			Definition: "A modern programming language.",
		}, word)
	})

	t.Run("Empty store", func(t *testing.T) {
		ctx, words := newWordRepository(t)

		_, err := words.RandomWord(ctx)

		require.ErrorIs(t, err, apperror.ErrNoWords)
	})
}

func TestWordRepository_RandomWords(t *testing.T) {
	t.Run("RandomWords", func(t *testing.T) {
		ctx, words := newWordRepository(t)
		_, err := words.Import(ctx, testWords)
		require.NoError(t, err)

		// When: more words are requested than stored
		got, err := words.RandomWords(ctx, 6)

		// Then: every stored word comes back once
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.ElementsMatch(t, []string{"KOTLIN", "GIT"}, []string{got[0].Word, got[1].Word})
	})

	t.Run("Empty store", func(t *testing.T) {
		ctx, words := newWordRepository(t)

		_, err := words.RandomWords(ctx, 6)

		require.ErrorIs(t, err, apperror.ErrNoWords)
	})
}

func TestWordRepository_PreloadIfEmpty(t *testing.T) {
	ctx, words := newWordRepository(t)

	// Given: an empty store is preloaded
	added, err := words.PreloadIfEmpty(ctx, testWords[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// When: it is preloaded again with other words
	added, err = words.PreloadIfEmpty(ctx, testWords[1:])

	// Then: nothing is added
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	count, err := words.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
