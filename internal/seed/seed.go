// Package seed loads the quote seed data set and writes it into a quote store.
//
// The default data set is embedded in the binary. A YAML file with the same
// shape can replace it:
//
//	quotes:
//	  - text: "The journey of a thousand miles begins with one step."
//	    author: "Lao Tzu"
//	    category: wisdom
//	    tags: [journey, beginning]
package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

//go:embed quotes.yaml
var defaultData []byte

// ErrEmpty is returned when a data set contains no quotes.
var ErrEmpty = errors.New("seed data contains no quotes")

// record is one seed entry as written in YAML.
type record struct {
	Text     string   `koanf:"text"`
	Author   string   `koanf:"author"`
	Category string   `koanf:"category"`
	Tags     []string `koanf:"tags"`
}

// Default returns the embedded data set.
func Default() ([]domain.NewQuote, error) {
	return load(rawbytes.Provider(defaultData), "embedded data")
}

// Load reads a data set from path, or the embedded one when path is empty.
func Load(path string) ([]domain.NewQuote, error) {
	if path == "" {
		return Default()
	}

	return load(file.Provider(path), path)
}

// Parse reads a data set from raw YAML.
func Parse(data []byte) ([]domain.NewQuote, error) {
	return load(rawbytes.Provider(data), "raw data")
}

func load(provider koanf.Provider, source string) ([]domain.NewQuote, error) {
	k := koanf.New(".")

	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading seed data from %s: %w", source, err)
	}

	var records []record
	if err := k.Unmarshal("quotes", &records); err != nil {
		return nil, fmt.Errorf("decoding seed data from %s: %w", source, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmpty)
	}

	quotes := make([]domain.NewQuote, 0, len(records))
	for _, r := range records {
		quotes = append(quotes, domain.NewQuote{
			Text:     r.Text,
			Author:   r.Author,
			Category: domain.Category(r.Category),
			Tags:     r.Tags,
		})
	}

	return quotes, nil
}
