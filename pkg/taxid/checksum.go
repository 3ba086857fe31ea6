package taxid

var (
	orgWeights    = [...]int{2, 4, 10, 3, 5, 9, 4, 6, 8}
	firstWeights  = [...]int{7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
	secondWeights = [...]int{3, 7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
)

// ChecksumValid reports whether the control digit(s) of a 10-digit
// (organization) or 12-digit (individual) INN match the weighted sum.
// Any other length or any non-digit byte yields false.
func ChecksumValid(digits string) bool {
	if !isDigits(digits) {
		return false
	}

	switch len(digits) {
	case 10:
		return control(digits, orgWeights[:]) == digit(digits, 9)
	case 12:
		// The second pass is skipped when the first control digit is already wrong.
		if control(digits, firstWeights[:]) != digit(digits, 10) {
			return false
		}
		return control(digits, secondWeights[:]) == digit(digits, 11)
	default:
		return false
	}
}

// ControlDigits returns the control digit(s) that complete a prefix:
// one digit for a 9-digit organization prefix, two for a 10-digit
// individual prefix.
func ControlDigits(prefix string) (string, error) {
	if !isDigits(prefix) {
		return "", ErrInvalidPrefix
	}

	switch len(prefix) {
	case 9:
		return string(byte('0' + control(prefix, orgWeights[:]))), nil
	case 10:
		first := byte('0' + control(prefix, firstWeights[:]))
		second := byte('0' + control(prefix+string(first), secondWeights[:]))
		return string([]byte{first, second}), nil
	default:
		return "", ErrInvalidPrefix
	}
}

// control computes (sum(w[i]*d[i]) mod 11) mod 10 over the leading len(weights) digits.
func control(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += w * digit(digits, i)
	}
	return sum % 11 % 10
}

func digit(s string, i int) int {
	return int(s[i] - '0')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
