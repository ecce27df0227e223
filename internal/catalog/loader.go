package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"quote-desk/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading catalogue files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON catalogue file and returns its products. The file is
// expected to contain a JSON array of product objects.
func (l *fileLoader) Load(ctx context.Context, source string) ([]model.Product, error) {
	l.logger.Info().Str("file", source).Msg("loading catalogue file")

	file, err := os.Open(source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", source, err)
	}
	defer file.Close()

	products, err := decodeProducts(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to decode catalogue file")
		return nil, fmt.Errorf("failed to decode catalogue file %s: %w", source, err)
	}

	l.logger.Info().
		Str("file", source).
		Int("products_loaded", len(products)).
		Msg("catalogue file loaded successfully")

	return products, nil
}

// decodeProducts decodes and sanity-checks a JSON product array.
func decodeProducts(r io.Reader) ([]model.Product, error) {
	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, err
	}

	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %d: missing id", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("product %s: missing name", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s: negative price", p.ID)
		}
	}

	return products, nil
}
