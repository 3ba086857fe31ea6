package validator

import (
	"github.com/dmitrymomot/taxid/pkg/taxid"
)

func innRule(field string, res taxid.Result) Rule {
	return Rule{
		Check: func() bool {
			return res.IsValid
		},
		Error: ValidationError{
			Field:          field,
			Code:           res.ErrorCode.String(),
			Message:        res.ErrorMessage,
			TranslationKey: res.ErrorCode.UITranslationKey(),
			TranslationValues: map[string]any{
				"field": field,
				"code":  int(res.ErrorCode),
			},
		},
	}
}

// ValidINN validates an organization or individual INN.
func ValidINN(field string, value any, opts ...taxid.Option) Rule {
	return innRule(field, taxid.ValidateINN(value, opts...))
}

// ValidINNLegacy validates length and control digits only.
func ValidINNLegacy(field string, value any) Rule {
	return innRule(field, taxid.ValidateINNLegacy(value))
}

// ValidINNWithKPP validates an INN and, when present, its KPP as one field.
func ValidINNWithKPP(field string, inn, kpp any) Rule {
	return innRule(field, taxid.ValidateINNWithKPP(inn, kpp))
}

// ValidKPP validates a 9-character KPP. An empty value fails; wrap the rule
// in a presence check for optional fields.
func ValidKPP(field string, value any) Rule {
	res := taxid.ValidateKPP(value)
	return Rule{
		Check: func() bool {
			return res.IsValid
		},
		Error: ValidationError{
			Field:          field,
			Code:           taxid.InvalidPPCode.String(),
			Message:        res.ErrorMessage,
			TranslationKey: res.Reason.TranslationKey(),
			TranslationValues: map[string]any{
				"field":  field,
				"reason": res.Reason.String(),
			},
		},
	}
}

// INNOfType requires the INN length to match the entity type. Values whose
// type cannot be told pass, so combine it with ValidINN.
func INNOfType(field string, value any, t taxid.EntityType) Rule {
	res := taxid.ValidateINNLegacy(value)
	return Rule{
		Check: func() bool {
			if res.Details.Type == "" {
				return true
			}
			return res.Details.Type == t
		},
		Error: ValidationError{
			Field:          field,
			Code:           taxid.InvalidLength.String(),
			Message:        "INN does not belong to an " + string(t),
			TranslationKey: "taxid.ui.entity_type",
			TranslationValues: map[string]any{
				"field": field,
				"type":  string(t),
			},
		},
	}
}
