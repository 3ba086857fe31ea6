// Package taxid validates Russian tax identifiers: the 10-digit organization
// INN, the 12-digit individual INN and the 9-character KPP.
//
// Every validator is a pure function. Inputs may be strings, numbers or any
// printable value; they are trimmed and checked in a fixed order, and the
// first failing check decides the outcome. Invalid input never panics and
// never produces a Go error from the validator itself: the Result carries an
// ErrorCode, a canonical message and the details collected so far.
//
// # Checks
//
// ValidateINN applies, in order:
//
//   - Empty: nil or the empty string
//   - NotDigits: anything but ASCII digits after trimming
//   - InvalidLength: neither 10 nor 12 digits
//   - InvalidRegionCode, ForeignOrgInvalid: the NNYY prefix (optional)
//   - InvalidChecksum: the weighted control digit(s)
//
// ValidateINNLegacy skips the prefix checks. ValidateKPP checks a KPP on its
// own and ValidateINNWithKPP combines both into one Result.
//
// # Usage
//
//	res := taxid.ValidateINN("7707083893")
//	if !res.IsValid {
//		return res.Err() // errors.Is(err, taxid.ErrInvalidChecksum) etc.
//	}
//
//	ui := taxid.ValidateINNForUI(form.INN, "Company INN", taxid.WithForeignOrgs(false))
//	// ui.Message is empty when valid
//
// # Localization
//
// Messages and UIMessages hold the English texts. ErrorCode.TranslationKey,
// ErrorCode.UITranslationKey and KPPReason.TranslationKey name the keys used
// by the bundled ru/en translation files.
package taxid
