// Command wordctl manages the SQLite word store behind hangman and word search.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/rocketscienceinc/pencilgames-backend/internal/repository"
	"github.com/rocketscienceinc/pencilgames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pencilgames-backend/internal/words"
)

func main() {
	_ = godotenv.Load()

	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wordctl: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "wordctl",
		Usage: "manage the word store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the SQLite word store",
				Value:   "words.db",
				Sources: cli.EnvVars("SQLITE_STORAGE_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "load the built-in word list, keeping existing words",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withWords(ctx, cmd, func(repo repository.WordRepository) error {
						seed, err := words.Seed()
						if err != nil {
							return err
						}

						added, err := repo.Import(ctx, seed)
						if err != nil {
							return err
						}

						fmt.Fprintf(out, "added %d words\n", added)

						return nil
					})
				},
			},
			{
				Name:  "import",
				Usage: "import words from a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON array of {word, hint, definition}",
						Required: true,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					data, err := os.ReadFile(cmd.String("file"))
					if err != nil {
						return fmt.Errorf("failed to read file: %w", err)
					}

					list, err := words.Parse(data)
					if err != nil {
						return err
					}

					return withWords(ctx, cmd, func(repo repository.WordRepository) error {
						added, err := repo.Import(ctx, list)
						if err != nil {
							return err
						}

						fmt.Fprintf(out, "added %d of %d words\n", added, len(list))

						return nil
					})
				},
			},
			{
				Name:  "count",
				Usage: "print how many words are stored",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withWords(ctx, cmd, func(repo repository.WordRepository) error {
						count, err := repo.Count(ctx)
						if err != nil {
							return err
						}

						fmt.Fprintln(out, count)

						return nil
					})
				},
			},
		},
	}
}

func withWords(ctx context.Context, cmd *cli.Command, fn func(repository.WordRepository) error) error {
	db, err := storage.NewSQLiteStorage(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err = db.Init(ctx); err != nil {
		return err
	}

	return fn(repository.NewWordRepository(db.Connection))
}
