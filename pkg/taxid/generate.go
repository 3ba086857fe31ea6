package taxid

import (
	"math/rand/v2"
	"strings"
)

// GenerateOrganization returns a random 10-digit INN with a correct control digit.
// The region code is not constrained, so structure checks may reject it.
func GenerateOrganization(r *rand.Rand) string {
	return complete(randomDigits(r, 9))
}

// GenerateIndividual returns a random 12-digit INN with correct control digits.
func GenerateIndividual(r *rand.Rand) string {
	return complete(randomDigits(r, 10))
}

// Generate returns n checksum-valid identifiers of the given type. An empty
// type alternates, starting with an individual INN.
func Generate(r *rand.Rand, n int, t EntityType) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := range n {
		switch {
		case t == Individual, t == "" && i%2 == 0:
			out = append(out, GenerateIndividual(r))
		default:
			out = append(out, GenerateOrganization(r))
		}
	}
	return out
}

func randomDigits(r *rand.Rand, n int) string {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	var b strings.Builder
	b.Grow(n + 2)
	for range n {
		b.WriteByte(byte('0' + r.IntN(10)))
	}
	return b.String()
}

func complete(prefix string) string {
	// prefix is always 9 or 10 digits here
	cd, _ := ControlDigits(prefix)
	return prefix + cd
}
