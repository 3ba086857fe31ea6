package taxid

import (
	"errors"
	"strconv"
)

// ErrorCode identifies the first check an identifier failed.
// The numbering is part of the public contract and must not change.
type ErrorCode int

const (
	None ErrorCode = iota
	Empty
	NotDigits
	InvalidLength
	InvalidChecksum
	InvalidRegionCode
	InvalidYYIndex
	ForeignOrgInvalid
	InvalidPPCode
)

var codeNames = map[ErrorCode]string{
	None:              "NONE",
	Empty:             "EMPTY",
	NotDigits:         "NOT_DIGITS",
	InvalidLength:     "INVALID_LENGTH",
	InvalidChecksum:   "INVALID_CHECKSUM",
	InvalidRegionCode: "INVALID_REGION_CODE",
	InvalidYYIndex:    "INVALID_YY_INDEX",
	ForeignOrgInvalid: "FOREIGN_ORG_INVALID",
	InvalidPPCode:     "INVALID_PP_CODE",
}

var codeKeys = map[ErrorCode]string{
	Empty:             "empty",
	NotDigits:         "not_digits",
	InvalidLength:     "invalid_length",
	InvalidChecksum:   "invalid_checksum",
	InvalidRegionCode: "invalid_region_code",
	InvalidYYIndex:    "invalid_yy_index",
	ForeignOrgInvalid: "foreign_org_invalid",
	InvalidPPCode:     "invalid_pp_code",
}

// Messages is the canonical message for every rejection code.
// It is exported for localization tooling and must be treated as read-only.
var Messages = map[ErrorCode]string{
	Empty:             "INN cannot be empty",
	NotDigits:         "INN must contain only digits",
	InvalidLength:     "INN must contain 10 digits (organization) or 12 digits (individual or sole proprietor)",
	InvalidChecksum:   "Invalid control digit",
	InvalidRegionCode: "Invalid tax authority code (first 2 digits)",
	InvalidYYIndex:    "Invalid tax authority index (3rd and 4th digits)",
	ForeignOrgInvalid: "Invalid foreign organization INN format",
	InvalidPPCode:     "Invalid tax-registration cause code (KPP)",
}

// Sentinel errors, one per rejection code.
var (
	ErrEmpty             = errors.New("taxid: empty identifier")
	ErrNotDigits         = errors.New("taxid: identifier contains non-digit characters")
	ErrInvalidLength     = errors.New("taxid: invalid identifier length")
	ErrInvalidChecksum   = errors.New("taxid: invalid control digit")
	ErrInvalidRegionCode = errors.New("taxid: invalid region code")
	ErrInvalidYYIndex    = errors.New("taxid: invalid tax authority index")
	ErrForeignOrgInvalid = errors.New("taxid: foreign organization not allowed")
	ErrInvalidPPCode     = errors.New("taxid: invalid kpp")

	// ErrInvalidPrefix is returned by ControlDigits for prefixes that are not 9 or 10 ASCII digits.
	ErrInvalidPrefix = errors.New("taxid: prefix must be 9 or 10 digits")
)

var codeErrors = map[ErrorCode]error{
	Empty:             ErrEmpty,
	NotDigits:         ErrNotDigits,
	InvalidLength:     ErrInvalidLength,
	InvalidChecksum:   ErrInvalidChecksum,
	InvalidRegionCode: ErrInvalidRegionCode,
	InvalidYYIndex:    ErrInvalidYYIndex,
	ForeignOrgInvalid: ErrForeignOrgInvalid,
	InvalidPPCode:     ErrInvalidPPCode,
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// Message returns the canonical message, or an empty string for None and unknown codes.
func (c ErrorCode) Message() string {
	return Messages[c]
}

// TranslationKey is the i18n key of the canonical message.
func (c ErrorCode) TranslationKey() string {
	if k, ok := codeKeys[c]; ok {
		return "taxid.error." + k
	}
	return ""
}

// UITranslationKey is the i18n key of the field-aware UI message.
func (c ErrorCode) UITranslationKey() string {
	if k, ok := codeKeys[c]; ok {
		return "taxid.ui." + k
	}
	return "taxid.ui.default"
}

// Err returns the sentinel error for the code, nil for None.
func (c ErrorCode) Err() error {
	return codeErrors[c]
}

// MarshalJSON encodes None as null and any other code as its number.
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	if c == None {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalJSON accepts null or a number.
func (c *ErrorCode) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*c = None
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Join(errors.New("taxid: invalid error code"), err)
	}
	*c = ErrorCode(n)
	return nil
}

// ValidationError is the error form of a failed Result.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Code.Err()
}
