package taxid

// regionCodes holds the tax authority codes (NN, the first two digits)
// assigned to the constituent entities of the Russian Federation.
var regionCodes = func() map[string]bool {
	m := make(map[string]bool, 99)
	for i := 1; i <= 99; i++ {
		m[string([]byte{byte('0' + i/10), byte('0' + i%10)})] = true
	}
	return m
}()

// foreignPrefixes are NN values reserved for foreign organizations.
var foreignPrefixes = map[string]bool{
	"99": true,
}

// StructureResult describes the NNYY prefix of an INN.
type StructureResult struct {
	IsValid   bool
	ErrorCode ErrorCode
	IsForeign bool
	// RegionCode is the numeric value of the first two digits in every branch.
	RegionCode int
	// RegionPrefix is the first two characters exactly as they appear in the input.
	RegionPrefix string
	YYIndex      int
}

// CheckStructure validates the region code (NN) and tax authority index (YY)
// of a digit string at least four characters long. A foreign-organization
// prefix is structurally valid; rejecting it is left to the caller.
func CheckStructure(digits string) StructureResult {
	if len(digits) < 4 || !isDigits(digits[:4]) {
		return StructureResult{ErrorCode: InvalidRegionCode}
	}

	prefix := digits[:2]
	res := StructureResult{
		RegionPrefix: prefix,
		RegionCode:   digit(prefix, 0)*10 + digit(prefix, 1),
		YYIndex:      digit(digits, 2)*10 + digit(digits, 3),
	}

	if foreignPrefixes[prefix] {
		res.IsValid = true
		res.IsForeign = true
		return res
	}

	if !regionCodes[prefix] {
		res.ErrorCode = InvalidRegionCode
		return res
	}

	// Unreachable for two digits; kept as the documented bound of YY.
	if res.YYIndex < 0 || res.YYIndex > 99 {
		res.ErrorCode = InvalidYYIndex
		return res
	}

	res.IsValid = true
	return res
}
