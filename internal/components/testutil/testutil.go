package testutil

import (
	"math/rand"
)

// RandomString generates a random string of printable ASCII and a handful of
// latin-1 runes given the pseudo random source.
func RandomString(rndm *rand.Rand, length int) string {
	extra := []rune{'é', 'ß', '®', '™', '&', '#', ';'}

	str := make([]rune, length)
	for i := range length {
		if rndm.Intn(8) == 0 {
			str[i] = extra[rndm.Intn(len(extra))]
			continue
		}
		str[i] = ' ' + rune(rndm.Intn('~'-' '+1))
	}
	return string(str)
}
