package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("i18n: adapter is nil")
	ErrEmptyLanguage       = errors.New("i18n: empty language code")
	ErrLanguageUnsupported = errors.New("i18n: language not supported")
	ErrFailedToMarshalJSON = errors.New("i18n: failed to marshal translations to JSON")

	ErrParsingCancelled = errors.New("i18n: parsing cancelled")
	ErrFailedToParse    = errors.New("i18n: failed to parse translations")

	ErrLoadingCancelled   = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadDir    = errors.New("i18n: failed to read translations directory")
	ErrFailedToReadFile   = errors.New("i18n: failed to read translation file")
	ErrNoTranslationFiles = errors.New("i18n: no translation files found")
)
