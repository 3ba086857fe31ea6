// Package i18n loads nested translation trees from YAML or JSON and renders
// them with %{name} placeholders.
//
// Translations come from a TranslationAdapter: MapAdapter for in-memory data
// or FSAdapter for a directory of an fs.FS such as embed.FS. Each document is
// keyed by language at the top level:
//
//	ru:
//	  taxid:
//	    ui:
//	      empty: 'Поле "%{field}" обязательно для заполнения'
//
// Language negotiation uses golang.org/x/text/language, so "ru-RU" resolves
// to a loaded "ru" and unknown languages fall back to the default:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(files, "."),
//		i18n.WithDefaultLanguage("ru"))
//	lang := tr.Match(r.Header.Get("Accept-Language"))
//	msg := tr.T(lang, "taxid.ui.empty", "field", "ИНН")
//
// Middleware with Translator.Extractor stores the negotiated language in the
// request context for Tc. A Translator is safe for concurrent use; Reload
// swaps the whole set atomically.
package i18n
