package i18n

import "net/http"

// LangExtractor returns the preferred language of a request, "" when unknown.
type LangExtractor func(r *http.Request) string

// Extractor negotiates the request language against the loaded languages.
// The query parameter (when named) is preferred over the Accept-Language
// header.
func (t *Translator) Extractor(queryParam string) LangExtractor {
	return func(r *http.Request) string {
		var prefs []string
		if queryParam != "" {
			if q := r.URL.Query().Get(queryParam); q != "" {
				prefs = append(prefs, q)
			}
		}
		if h := r.Header.Get("Accept-Language"); h != "" {
			prefs = append(prefs, h)
		}
		if len(prefs) == 0 {
			return ""
		}
		return t.Match(prefs...)
	}
}

// Middleware stores the extracted language in the request context and sets
// the Content-Language response header.
func Middleware(extract LangExtractor, defaultLang string) func(http.Handler) http.Handler {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if extract != nil {
				lang = extract(r)
			}
			if lang == "" {
				lang = defaultLang
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
