package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput  = "output"
	keyTable   = "table"
	keyLogging = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyOutput:  true,
	keyTable:   true,
	keyLogging: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so it can be decoded onto the typed field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes raw YAML into a fresh zero value of the section
// named by key and replaces that section of target.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyOutput:
		var v OutputConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Output = v
		return nil
	case keyTable:
		var v TableConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Table = v
		return nil
	case keyLogging:
		var v LoggingConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// SetOverlayValue sets a dotted key in the overlay file at overlayPath and
// rewrites only the section that key belongs to. base is the effective config
// below the overlay; it supplies the rest of that section when the overlay
// does not define it yet. Other overlay sections are written back unchanged.
func SetOverlayValue(base *Config, overlayPath, key, value string) error {
	if base == nil {
		return errors.New("nil base *Config in SetOverlayValue")
	}

	doc := map[string]yaml.Node{}
	data, err := os.ReadFile(overlayPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	default:
		if err = yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
		}
		if doc == nil {
			doc = map[string]yaml.Node{}
		}
	}

	cfg := *base
	if err = cfg.Set(key, value); err != nil {
		return err
	}

	section, _, _ := strings.Cut(key, ".")
	var node yaml.Node
	if err = node.Encode(sectionOf(&cfg, section)); err != nil {
		return fmt.Errorf("encoding overlay section %q: %w", section, err)
	}
	doc[section] = node

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding overlay %s: %w", overlayPath, err)
	}
	if err = os.MkdirAll(filepath.Dir(overlayPath), 0o750); err != nil {
		return fmt.Errorf("creating overlay directory: %w", err)
	}
	if err = os.WriteFile(overlayPath, out, 0o600); err != nil {
		return fmt.Errorf("writing overlay %s: %w", overlayPath, err)
	}
	return nil
}

// sectionOf returns the typed section of cfg named by a top-level key.
// key must already be known to Set.
func sectionOf(cfg *Config, key string) any {
	switch key {
	case keyOutput:
		return cfg.Output
	case keyTable:
		return cfg.Table
	default:
		return cfg.Logging
	}
}
