// Package locales embeds the English and Russian messages for tax
// identifier validation.
package locales

import (
	"context"
	"embed"

	"github.com/dmitrymomot/taxid/pkg/i18n"
)

//go:embed *.yaml
var files embed.FS

// Supported lists the embedded languages.
var Supported = []string{"en", "ru"}

// New returns a translator over the embedded files. The default language is
// English unless overridden with i18n.WithDefaultLanguage.
func New(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(files, "."), opts...)
}

// MustNew is New that panics on error. The embedded files are fixed at build
// time, so a failure here is a programming error.
func MustNew(opts ...i18n.Option) *i18n.Translator {
	tr, err := New(context.Background(), opts...)
	if err != nil {
		panic(err)
	}
	return tr
}
