package taxid

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// kppRegex matches NNNN PP XXX where PP may hold digits or capital Latin letters.
var kppRegex = regexp.MustCompile(`^\d{4}[0-9A-Z]{2}\d{3}$`)

// KPPReason identifies why a KPP was rejected.
type KPPReason int

const (
	KPPOK KPPReason = iota
	KPPEmpty
	KPPInvalidLength
	KPPInvalidFormat
	KPPInvalidCauseCode
)

var kppMessages = map[KPPReason]string{
	KPPEmpty:            "KPP cannot be empty",
	KPPInvalidLength:    "KPP must contain 9 characters",
	KPPInvalidFormat:    "Invalid KPP format",
	KPPInvalidCauseCode: "Invalid tax-registration cause code",
}

var kppKeys = map[KPPReason]string{
	KPPEmpty:            "empty",
	KPPInvalidLength:    "invalid_length",
	KPPInvalidFormat:    "invalid_format",
	KPPInvalidCauseCode: "invalid_cause_code",
}

func (r KPPReason) String() string {
	if k, ok := kppKeys[r]; ok {
		return k
	}
	return "ok"
}

// Message returns the canonical message for the reason.
func (r KPPReason) Message() string {
	return kppMessages[r]
}

// TranslationKey is the i18n key of the reason's message; empty for KPPOK.
func (r KPPReason) TranslationKey() string {
	if k, ok := kppKeys[r]; ok {
		return "taxid.kpp." + k
	}
	return ""
}

// MarshalText encodes the reason by name.
func (r KPPReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// KPPResult is the outcome of a KPP validation.
type KPPResult struct {
	IsValid      bool      `json:"isValid"`
	ErrorMessage string    `json:"errorMessage"`
	Reason       KPPReason `json:"reason"`
}

func kppFail(r KPPReason) KPPResult {
	return KPPResult{ErrorMessage: kppMessages[r], Reason: r}
}

// ValidateKPP checks the length, the NNNNPPXXX pattern and the registration
// cause code (PP) of a KPP. Numeric cause codes must fall within 01..99;
// codes containing letters are accepted as they are.
func ValidateKPP(v any) KPPResult {
	if isFalsy(v) {
		return kppFail(KPPEmpty)
	}

	kpp := normalize(v)
	if utf8.RuneCountInString(kpp) != 9 {
		return kppFail(KPPInvalidLength)
	}
	if !kppRegex.MatchString(kpp) {
		return kppFail(KPPInvalidFormat)
	}

	// 01..50 are domestic reasons and 50..99 foreign ones; both bounds are inclusive.
	if pp, ok := leadingNumber(kpp[4:6]); ok && (pp < 1 || pp > 99) {
		return kppFail(KPPInvalidCauseCode)
	}

	return KPPResult{IsValid: true}
}

// leadingNumber parses the run of digits at the start of s, so "0A" yields 0
// and "A1" yields no number at all.
func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
