package taxid

import "strings"

// DefaultFieldName is used in UI messages when no field name is given.
const DefaultFieldName = "INN"

// UIMessages holds the user-facing message templates. Only the templates for
// Empty and NotDigits mention the field, through the %{field} placeholder.
// It must be treated as read-only.
var UIMessages = map[ErrorCode]string{
	Empty:             `Field "%{field}" is required`,
	NotDigits:         `Field "%{field}" must contain only digits`,
	InvalidLength:     "INN must contain 10 digits (for organizations) or 12 digits (for individuals)",
	InvalidRegionCode: "Invalid tax authority code in INN",
	InvalidYYIndex:    "Invalid tax authority index in INN",
	InvalidChecksum:   "Invalid INN control digit. Please check the number",
	ForeignOrgInvalid: "Invalid foreign organization INN format",
}

const defaultUIMessage = "Invalid INN"

// UIResult is a validation outcome ready to show next to a form field.
type UIResult struct {
	IsValid bool    `json:"isValid"`
	Message string  `json:"message"`
	Details Details `json:"details"`
}

// UIMessage renders the UI message for code. Codes without a template,
// InvalidPPCode included, get a generic message.
func UIMessage(code ErrorCode, fieldName string) string {
	if code == None {
		return ""
	}
	if fieldName == "" {
		fieldName = DefaultFieldName
	}
	tmpl, ok := UIMessages[code]
	if !ok {
		return defaultUIMessage
	}
	return strings.ReplaceAll(tmpl, "%{field}", fieldName)
}

// ValidateINNForUI validates like ValidateINN and replaces the canonical
// message with a field-aware one.
func ValidateINNForUI(v any, fieldName string, opts ...Option) UIResult {
	res := ValidateINN(v, opts...)
	if res.IsValid {
		return UIResult{IsValid: true, Details: res.Details}
	}
	return UIResult{
		Message: UIMessage(res.ErrorCode, fieldName),
		Details: res.Details,
	}
}
