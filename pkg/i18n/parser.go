package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a translation document into language -> tree of keys.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// SupportsFileExtension accepts the extension with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser by file extension, nil when none fits.
func ParserForFile(name string) Parser {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return nil
	}
	for _, p := range []Parser{YAMLParser{}, JSONParser{}} {
		if p.SupportsFileExtension(name[idx:]) {
			return p
		}
	}
	return nil
}

// YAMLParser reads documents of the form `lang: {key: value}`.
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return splitLanguages(doc)
}

func (YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser reads documents of the form `{"lang": {"key": "value"}}`.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return splitLanguages(doc)
}

func (JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

func splitLanguages(doc map[string]any) (map[string]map[string]any, error) {
	if len(doc) == 0 {
		return nil, errors.Join(ErrFailedToParse, errors.New("document has no languages"))
	}

	out := make(map[string]map[string]any, len(doc))
	for lang, v := range doc {
		tree, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Join(ErrFailedToParse,
				fmt.Errorf("language %q: expected a map, got %T", lang, v))
		}
		out[lang] = tree
	}
	return out, nil
}
