package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/cafetable/internal/engine"
	"github.com/rshade/cafetable/internal/logging"
)

// Validation errors.
var (
	ErrEmptyPlace     = errors.New("record has an empty place")
	ErrDuplicatePlace = errors.New("duplicate place")
	ErrInvalidPrice   = errors.New("invalid price")
)

//go:embed data/cafes.json
var bundledCafes []byte

// Bundled returns the café list shipped with the binary.
func Bundled() ([]engine.Record, error) {
	records, err := Decode(bytes.NewReader(bundledCafes), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding bundled dataset: %w", err)
	}
	if err = Validate(records); err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	return records, nil
}

// Load returns the records of paths, or the bundled dataset when no path is given.
func Load(ctx context.Context, paths []string) ([]engine.Record, error) {
	if len(paths) == 0 {
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "dataset").
			Msg("no data files given, using bundled dataset")
		return Bundled()
	}
	if len(paths) == 1 {
		return LoadFile(ctx, paths[0])
	}
	return LoadFiles(ctx, paths...)
}

// LoadFile decodes and validates a single dataset file.
func LoadFile(ctx context.Context, path string) ([]engine.Record, error) {
	records, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err = Validate(records); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "dataset").
		Str("file", path).
		Int("records", len(records)).
		Msg("dataset loaded")

	return records, nil
}

// LoadFiles reads several files concurrently and concatenates their records
// in argument order. The combined dataset is validated as a whole, so a place
// repeated across files is reported as a duplicate.
func LoadFiles(ctx context.Context, paths ...string) ([]engine.Record, error) {
	parts := make([][]engine.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			records, err := readFile(gctx, path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	records := make([]engine.Record, 0, total)
	for _, p := range parts {
		records = append(records, p...)
	}

	if err := Validate(records); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "dataset").
		Int("files", len(paths)).
		Int("records", len(records)).
		Msg("dataset loaded")

	return records, nil
}

func readFile(ctx context.Context, path string) ([]engine.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "dataset").
		Str("path", path).
		Str("format", string(format)).
		Int("records", len(records)).
		Msg("decoded dataset file")

	return records, nil
}

// Validate checks dataset-level rules: every place is non-empty and unique,
// every price is a finite, non-negative number.
func Validate(records []engine.Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.Place == "" {
			return fmt.Errorf("record %d: %w", i, ErrEmptyPlace)
		}
		if first, ok := seen[r.Place]; ok {
			return fmt.Errorf("record %d: %w: %q (first seen at record %d)", i, ErrDuplicatePlace, r.Place, first)
		}
		seen[r.Place] = i

		if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0 {
			return fmt.Errorf("record %d (%s): %w: %v", i, r.Place, ErrInvalidPrice, r.Price)
		}
	}
	return nil
}
