package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type WordRepository interface {
	RandomWord(ctx context.Context) (entity.Word, error)
	RandomWords(ctx context.Context, n int) ([]entity.Word, error)
	Count(ctx context.Context) (int, error)
	Import(ctx context.Context, words []entity.Word) (int, error)
	PreloadIfEmpty(ctx context.Context, seed []entity.Word) (int, error)
}

type wordRepository struct {
	conn *sql.DB
}

func NewWordRepository(conn *sql.DB) WordRepository {
	return &wordRepository{
		conn: conn,
	}
}

func (that *wordRepository) RandomWord(ctx context.Context) (entity.Word, error) {
	query := `SELECT word, hint, definition FROM words ORDER BY RANDOM() LIMIT 1`

	var word entity.Word

	err := that.conn.QueryRowContext(ctx, query).Scan(&word.Word, &word.Hint, &word.Definition)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Word{}, apperror.ErrNoWords
	}
	if err != nil {
		return entity.Word{}, fmt.Errorf("can't get random word: %w", err)
	}

	return word, nil
}

func (that *wordRepository) RandomWords(ctx context.Context, n int) ([]entity.Word, error) {
	query := `SELECT word, hint, definition FROM words ORDER BY RANDOM() LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("can't get random words: %w", err)
	}
	defer rows.Close()

	var words []entity.Word
	for rows.Next() {
		var word entity.Word
		if err = rows.Scan(&word.Word, &word.Hint, &word.Definition); err != nil {
			return nil, fmt.Errorf("can't scan word: %w", err)
		}

		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read words: %w", err)
	}

	if len(words) == 0 && n > 0 {
		return nil, apperror.ErrNoWords
	}

	return words, nil
}

func (that *wordRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM words`

	var count int
	if err := that.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("can't count words: %w", err)
	}

	return count, nil
}

// Import stores words in upper case. Blanks, words with anything but the letters A to Z
// and words already present are skipped. It returns how many were added.
func (that *wordRepository) Import(ctx context.Context, words []entity.Word) (int, error) {
	query := `INSERT OR IGNORE INTO words (word, hint, definition) VALUES (?, ?, ?)`

	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("can't prepare insert: %w", err)
	}
	defer stmt.Close()

	var added int
	for _, word := range words {
		text := strings.ToUpper(strings.TrimSpace(word.Word))
		if !entity.IsPlainWord(text) {
			continue
		}

		result, err := stmt.ExecContext(ctx, text, word.Hint, word.Definition)
		if err != nil {
			return 0, fmt.Errorf("can't insert word %q: %w", text, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("can't count inserted rows: %w", err)
		}

		added += int(affected)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("can't commit words: %w", err)
	}

	return added, nil
}

// PreloadIfEmpty imports seed only into an empty store.
func (that *wordRepository) PreloadIfEmpty(ctx context.Context, seed []entity.Word) (int, error) {
	count, err := that.Count(ctx)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		return 0, nil
	}

	return that.Import(ctx, seed)
}
