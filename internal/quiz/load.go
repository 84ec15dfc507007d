package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// source is the on-disk layout of a question bank.
type source struct {
	Questions []Entry `json:"questions" yaml:"questions"`
}

// LoadFile reads a JSON or YAML bank. Read failures wrap ErrSourceUnavailable;
// malformed content wraps ErrInvalidInput.
func LoadFile(path string, opts ...BankOption) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return Parse(data, formatFor(path), opts...)
}

// Format selects the decoder used by Parse.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a bank document.
func Parse(data []byte, format Format, opts ...BankOption) (*Bank, error) {
	var (
		src source
		err error
	)
	switch format {
	case FormatYAML:
		src, err = parseYAML(data)
	default:
		src, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := ValidateEntries(src.Questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return NewBankFromEntries(src.Questions, opts...)
}

func parseJSON(data []byte) (source, error) {
	var src source
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&src); err != nil {
		return source{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return source{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return source{}, fmt.Errorf("parse json: %w", err)
	}
	return src, nil
}

func parseYAML(data []byte) (source, error) {
	var src source
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&src); err != nil {
		return source{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return source{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return source{}, fmt.Errorf("parse yaml: %w", err)
	}
	return src, nil
}
