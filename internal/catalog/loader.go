package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"

	"checkout-core/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped catalog shards from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalog shard from the local file system.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Book, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog shard")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog shard")
		return nil, fmt.Errorf("failed to open catalog shard %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	books, err := parseShard(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading catalog shard")
		return nil, fmt.Errorf("error reading catalog shard %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("books_loaded", len(books)).
		Msg("catalog shard loaded")

	return books, nil
}
