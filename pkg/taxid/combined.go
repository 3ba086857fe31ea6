package taxid

// ValidateINNWithKPP validates the INN with default options and, when it is
// valid and a KPP was supplied, the KPP as well. A falsy KPP (nil, "" or 0)
// counts as not supplied. A KPP failure keeps the INN details, sets
// Details.KPPError and reports InvalidPPCode with the KPP message.
func ValidateINNWithKPP(inn, kpp any) Result {
	res, _ := ApplyKPP(ValidateINN(inn), kpp)
	return res
}

// ApplyKPP adds the KPP check to an INN result produced with any options.
// The KPP is only checked when res is valid and kpp is not falsy; otherwise
// res is returned unchanged with a zero KPPResult.
func ApplyKPP(res Result, kpp any) (Result, KPPResult) {
	if !res.IsValid || isFalsy(kpp) {
		return res, KPPResult{}
	}

	kr := ValidateKPP(kpp)
	if kr.IsValid {
		return res, kr
	}

	res.IsValid = false
	res.ErrorCode = InvalidPPCode
	res.ErrorMessage = kr.ErrorMessage
	res.Details.KPPError = true
	return res, kr
}
