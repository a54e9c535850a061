package blockindex

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSymbol     = errors.New("blockindex: symbol outside the {A,C,G,T} alphabet")
	ErrInvalidWordLength = errors.New("blockindex: word length must be in [1, block length]")
)

const (
	alphabetSize = 4
	minSymbol    = 'A'
	maxSymbol    = 'T'
)

// symbolValue maps a symbol to its digit, or -1 if the byte is not in the alphabet.
func symbolValue(c byte) int {
	switch c {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	}
	return -1
}

// validate returns an error describing the first byte outside the alphabet.
func validate(s []byte) error {
	for i, c := range s {
		if symbolValue(c) < 0 {
			return fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, c, i)
		}
	}
	return nil
}

// ValidateWord checks that word is a usable query for blocks of length blockLen.
func ValidateWord(word []byte, blockLen int) error {
	if len(word) == 0 || len(word) > blockLen {
		return fmt.Errorf("%w: got %d, block length %d", ErrInvalidWordLength, len(word), blockLen)
	}
	return validate(word)
}

// WordRank returns the base-4 value of word, most significant symbol first.
// The word must already be validated.
func WordRank(word []byte) int {
	r := 0
	for _, c := range word {
		r = r*alphabetSize + symbolValue(c)
	}
	return r
}

// Successor returns the lexicographically next word of the same length.
// For the all-T word the result wraps to all-A and ok is false.
func Successor(word []byte) (next []byte, ok bool) {
	next = append([]byte(nil), word...)
	return next, increment(next)
}

// increment advances word to its successor in place. It reports false when
// the word wrapped around from all-T.
func increment(word []byte) bool {
	for i := len(word) - 1; i >= 0; i-- {
		switch word[i] {
		case 'A':
			word[i] = 'C'
			return true
		case 'C':
			word[i] = 'G'
			return true
		case 'G':
			word[i] = 'T'
			return true
		default:
			word[i] = minSymbol
		}
	}
	return false
}

// BlockCount returns ceil(n / blockLen).
func BlockCount(n, blockLen int) int {
	return (n + blockLen - 1) / blockLen
}

// wordSpace is alphabetSize^length.
func wordSpace(length int) int {
	s := 1
	for range length {
		s *= alphabetSize
	}
	return s
}

func pad(word []byte, length int) []byte {
	padded := make([]byte, length)
	copy(padded, word)
	for i := len(word); i < length; i++ {
		padded[i] = minSymbol
	}
	return padded
}
