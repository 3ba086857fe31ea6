package taxid

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidEntityType is returned when decoding an unknown entity type.
var ErrInvalidEntityType = errors.New("taxid: invalid entity type")

// EntityType tells organizations (10 digits) from individuals (12 digits).
type EntityType string

const (
	Organization EntityType = "organization"
	Individual   EntityType = "individual"
)

// MarshalJSON encodes the unset type as null.
func (t EntityType) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null, "", "organization" and "individual".
func (t *EntityType) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*t = ""
		return nil
	}
	switch v := EntityType(*s); v {
	case "", Organization, Individual:
		*t = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, *s)
	}
}

// Details is filled in as checks pass. Fields of checks that never ran keep their zero values.
type Details struct {
	Length       int        `json:"length"`
	Type         EntityType `json:"type"`
	RegionCode   *int       `json:"regionCode"`
	YYIndex      *int       `json:"yyIndex"`
	IsForeignOrg bool       `json:"isForeignOrg"`
	// IsNewFormat is set whenever the structure was checked, since every
	// two-digit index satisfies yy >= 0.
	IsNewFormat bool `json:"isNewFormat"`
	KPPError    bool `json:"kppError,omitempty"`
}

// Result is the outcome of an INN validation.
type Result struct {
	IsValid      bool      `json:"isValid"`
	ErrorCode    ErrorCode `json:"errorCode"`
	ErrorMessage string    `json:"errorMessage"`
	Details      Details   `json:"details"`
}

// Err converts a failed result into a *ValidationError; nil when valid.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Code: r.ErrorCode, Message: r.ErrorMessage}
}

func (r Result) fail(code ErrorCode) Result {
	r.IsValid = false
	r.ErrorCode = code
	r.ErrorMessage = Messages[code]
	return r
}

// ValidateINN runs the checks in a fixed order and stops at the first failure:
// empty, digits only, length, structure (optional), checksum.
// The value may be a string, a number or anything printable; it is never mutated.
func ValidateINN(v any, opts ...Option) Result {
	o := buildOptions(opts)
	var res Result

	if isAbsent(v) {
		return res.fail(Empty)
	}

	inn := normalize(v)
	res.Details.Length = utf8.RuneCountInString(inn)

	if !isDigits(inn) {
		return res.fail(NotDigits)
	}

	if len(inn) != 10 && len(inn) != 12 {
		return res.fail(InvalidLength)
	}

	res.Details.Type = Organization
	if len(inn) == 12 {
		res.Details.Type = Individual
	}

	if o.ValidateStructure && len(inn) >= 4 {
		sr := CheckStructure(inn)
		region, yy := sr.RegionCode, sr.YYIndex
		res.Details.IsForeignOrg = sr.IsForeign
		res.Details.RegionCode = &region
		res.Details.YYIndex = &yy
		res.Details.IsNewFormat = yy >= 0

		if sr.IsForeign && !o.AllowForeignOrgs {
			return res.fail(ForeignOrgInvalid)
		}
		if !sr.IsValid {
			return res.fail(sr.ErrorCode)
		}
	}

	if !ChecksumValid(inn) {
		return res.fail(InvalidChecksum)
	}

	res.IsValid = true
	return res
}

// ValidateINNLegacy skips the structure checks. It accepts identifiers issued
// under earlier numbering rules as long as length and control digits hold.
func ValidateINNLegacy(v any) Result {
	return ValidateINN(v, WithStructure(false))
}
