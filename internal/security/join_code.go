package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// JoinCode returns a cryptographically secure, unbiased code of the requested
// length drawn from alphabet. Used for room join codes, where guessing one
// must stay impractical.
func JoinCode(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)
	for index := range code {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[index] = alphabet[position.Int64()]
	}

	return string(code), nil
}
