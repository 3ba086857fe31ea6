package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when neither the caller nor the options name one.
const DefaultLanguage = "en"

// Translator resolves dot-separated keys against per-language trees.
type Translator struct {
	adapter       TranslationAdapter
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	mu           sync.RWMutex
	translations map[string]map[string]any
	langs        []string
	matcher      language.Matcher
}

// NewTranslator loads translations through adapter and prepares language negotiation.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the translation set with a fresh load from the adapter.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	for lang, tree := range translations {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if tree == nil {
			return fmt.Errorf("i18n: nil translations for language %q", lang)
		}
	}

	langs, matcher := buildMatcher(t.defaultLang, translations)

	t.mu.Lock()
	t.translations = translations
	t.langs = langs
	t.matcher = matcher
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", "languages", t.SupportedLanguages())
	return nil
}

// buildMatcher puts the default language first so it wins when nothing matches.
func buildMatcher(defaultLang string, translations map[string]map[string]any) ([]string, language.Matcher) {
	names := slices.Sorted(maps.Keys(translations))
	if i := slices.Index(names, defaultLang); i > 0 {
		names = append([]string{defaultLang}, slices.Delete(names, i, i+1)...)
	}

	langs := make([]string, 0, len(names))
	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		langs = append(langs, name)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return langs, language.NewMatcher(tags)
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the best loaded language for the given preferences. Each
// preference may be a single tag ("ru") or a full Accept-Language value
// ("ru-RU,ru;q=0.9,en;q=0.8"). The default language is returned when
// nothing matches.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(tags) == 0 || t.matcher == nil {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// HasTranslation reports whether lang defines key as a string.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tree, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(tree, key).(string)
	return ok
}

// T translates key for lang. Args are name/value pairs substituted into
// %{name} placeholders. An empty or unknown lang uses the default language.
// A missing key yields the key itself, or "" with WithFallbackToKey(false).
func (t *Translator) T(lang, key string, args ...string) string {
	if s, ok := t.resolve(lang, key); ok {
		return format(s, args)
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Td is T with an explicit fallback text instead of the key.
func (t *Translator) Td(lang, key, fallback string, args ...string) string {
	if s, ok := t.resolve(lang, key); ok {
		return format(s, args)
	}
	return format(fallback, args)
}

// Tc translates using the locale stored in ctx by Middleware or SetLocale.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tree, ok := t.translations[lang]
	if !ok {
		if lang != "" && t.logMissing {
			t.logger.Warn("language not supported", "lang", lang, "key", key)
		}
		lang = t.defaultLang
		tree = t.translations[lang]
	}

	switch v := lookup(tree, key).(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case nil:
		if t.logMissing {
			t.logger.Warn("translation not found", "lang", lang, "key", key)
		}
	default:
		if t.logMissing {
			t.logger.Warn("translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", v))
		}
	}
	return "", false
}

// ExportJSON returns the full tree of lang as JSON for client-side use.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tree, ok := t.translations[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageUnsupported, lang)
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return b, nil
}

// lookup walks "a.b.c" through nested maps.
func lookup(tree map[string]any, key string) any {
	var cur any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[part]; !ok {
			return nil
		}
	}
	return cur
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders; unknown names are left as is.
func format(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Args flattens a values map into sorted name/value pairs for T.
func Args(values map[string]any) []string {
	args := make([]string, 0, len(values)*2)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		args = append(args, k, fmt.Sprint(values[k]))
	}
	return args
}
