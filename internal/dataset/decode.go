package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/cafetable/internal/engine"
)

// Format is the encoding of a dataset file.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// SupportedSchema is the semver constraint an envelope's schema_version must satisfy.
const SupportedSchema = "^1.0.0"

// Decoding errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrSchemaVersion     = errors.New("unsupported schema version")
	ErrMissingField      = errors.New("missing required field")
	ErrMissingColumn     = errors.New("missing CSV column")
)

// requiredColumns lists the CSV header names, in record field order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var requiredColumns = []string{"place", "neighborhood", "price"}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml, .yml or .csv)", ErrUnsupportedFormat, path)
	}
}

// rawRecord mirrors engine.Record with pointer fields so missing keys can be
// told apart from zero values.
type rawRecord struct {
	Place        *string  `json:"place"        yaml:"place"`
	Neighborhood *string  `json:"neighborhood" yaml:"neighborhood"`
	Price        *float64 `json:"price"        yaml:"price"`
}

// envelope is the versioned document form of a dataset.
type envelope struct {
	SchemaVersion string      `json:"schema_version" yaml:"schema_version"`
	Records       []rawRecord `json:"records"        yaml:"records"`
}

// Decode reads records in the given format. It checks structure only; use
// Validate for dataset-level rules.
func Decode(r io.Reader, format Format) ([]engine.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatCSV:
		return decodeCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) ([]engine.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var raw []rawRecord
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parsing JSON dataset: %w", err)
		}
		return fromRaw(raw)
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("parsing JSON dataset: %w", err)
	}
	return fromEnvelope(env)
}

func decodeYAML(data []byte) ([]engine.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML dataset: %w", err)
	}
	if len(doc.Content) == 0 {
		return []engine.Record{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var raw []rawRecord
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing YAML dataset: %w", err)
		}
		return fromRaw(raw)
	}

	var env envelope
	if err := root.Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing YAML dataset: %w", err)
	}
	return fromEnvelope(env)
}

func fromEnvelope(env envelope) ([]engine.Record, error) {
	if err := checkSchemaVersion(env.SchemaVersion); err != nil {
		return nil, err
	}
	return fromRaw(env.Records)
}

// checkSchemaVersion verifies version satisfies SupportedSchema.
func checkSchemaVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("%w: schema_version is required in a dataset envelope", ErrSchemaVersion)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid version: %w", ErrSchemaVersion, version, err)
	}

	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, v, SupportedSchema)
	}
	return nil
}

func fromRaw(raw []rawRecord) ([]engine.Record, error) {
	records := make([]engine.Record, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Place == nil:
			return nil, fmt.Errorf("record %d: %w: place", i, ErrMissingField)
		case r.Neighborhood == nil:
			return nil, fmt.Errorf("record %d: %w: neighborhood", i, ErrMissingField)
		case r.Price == nil:
			return nil, fmt.Errorf("record %d: %w: price", i, ErrMissingField)
		}
		records = append(records, engine.Record{
			Place:        *r.Place,
			Neighborhood: *r.Neighborhood,
			Price:        *r.Price,
		})
	}
	return records, nil
}

func decodeCSV(data []byte) ([]engine.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV dataset: %w", err)
	}
	if len(rows) == 0 {
		return []engine.Record{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	records := make([]engine.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2 //nolint:mnd // 1-based line numbers, after the header.
		priceText := strings.TrimSpace(row[columns["price"]])
		price, parseErr := strconv.ParseFloat(priceText, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrInvalidPrice, priceText)
		}
		records = append(records, engine.Record{
			Place:        strings.TrimSpace(row[columns["place"]]),
			Neighborhood: strings.TrimSpace(row[columns["neighborhood"]]),
			Price:        price,
		})
	}
	return records, nil
}
