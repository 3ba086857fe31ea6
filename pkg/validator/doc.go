// Package validator adapts the taxid validators to declarative, field-level
// rules that can be aggregated into a single error.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Apply evaluates every rule and collects the failures into ValidationErrors,
// which satisfies the error interface. ApplyFirst keeps only the first failure
// per field.
//
// # Architecture
//
// core.go holds the Rule, ValidationError and ValidationErrors types.
// taxid_rules.go turns taxid results into rules; the validation itself runs
// once, when the rule is built, and Check only reports the stored outcome.
// There is no global state, so the package is goroutine-safe.
//
// # Usage
//
//	err := validator.ApplyFirst(
//	    validator.ValidINN("inn", req.INN),
//	    validator.INNOfType("inn", req.INN, taxid.Organization),
//	    validator.ValidKPP("kpp", req.KPP),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msgs := verrs.Translate(func(key string, v map[string]any) string {
//	        return tr.T(lang, key, "field", v["field"].(string))
//	    })
//	    // msgs["inn"] == []string{"..."}
//	}
//
// # Error Handling
//
// ValidationErrors matches ErrValidationFailed through errors.Is and can be
// recovered with errors.As or ExtractValidationErrors. Each ValidationError
// carries the taxid error code name in Code.
package validator
