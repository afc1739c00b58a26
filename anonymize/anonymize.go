// Package anonymize replaces strings and object keys in JSON values with
// random strings of the same length, consistently within one Anonymizer.
package anonymize

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"math/bits"
	"slices"
	"unicode/utf8"
)

// DefaultAlphabet is used when Options.Alphabet is empty.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SeedSize is the number of seed bytes consumed by the generator.
const SeedSize = 16

var (
	ErrAlphabetTooSmall = errors.New("anonymize: alphabet must contain at least 2 characters")
	ErrSeedTooShort     = errors.New("anonymize: seed must be at least 16 bytes")
	ErrExhausted        = errors.New("anonymize: no unused replacement of this length")
)

// Options configures an Anonymizer.
type Options struct {
	// Seed makes output reproducible. Only the first 16 bytes are used. When
	// nil a seed is read from crypto/rand.
	Seed []byte
	// Alphabet lists the characters used in replacements.
	Alphabet string
	// Next overrides the generator entirely; Seed is then ignored.
	Next func() uint32
}

// Xoshiro128 is the xoshiro128** generator.
type Xoshiro128 struct {
	s [4]uint32
}

// NewXoshiro128 seeds the generator from the first 16 bytes of seed, read as
// little-endian words. The all-zero state is replaced by s0 = 1.
func NewXoshiro128(seed []byte) (*Xoshiro128, error) {
	if len(seed) < SeedSize {
		return nil, ErrSeedTooShort
	}
	x := &Xoshiro128{}
	for i := range x.s {
		x.s[i] = binary.LittleEndian.Uint32(seed[i*4:])
	}
	if x.s == [4]uint32{} {
		x.s[0] = 1
	}
	return x, nil
}

// Next returns the next 32-bit output.
func (x *Xoshiro128) Next() uint32 {
	s := &x.s
	out := bits.RotateLeft32(s[1]*5, 7) * 9
	t := s[1] << 9
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft32(s[3], 11)
	return out
}

// Anonymizer maps each distinct input string to a distinct replacement of
// the same length in characters. It is not safe for concurrent use.
type Anonymizer struct {
	alphabet []rune
	next     func() uint32
	forward  map[string]string
	reverse  map[string]string
	used     map[int]int // replacements handed out per length
}

// New builds an Anonymizer.
func New(opts Options) (*Anonymizer, error) {
	alphabet := opts.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	a := &Anonymizer{
		alphabet: []rune(alphabet),
		next:     opts.Next,
		forward:  make(map[string]string),
		reverse:  make(map[string]string),
		used:     make(map[int]int),
	}
	if len(a.alphabet) < 2 {
		return nil, ErrAlphabetTooSmall
	}
	if a.next == nil {
		seed := opts.Seed
		if seed == nil {
			seed = make([]byte, SeedSize)
			if _, err := rand.Read(seed); err != nil {
				return nil, fmt.Errorf("anonymize: read random seed: %w", err)
			}
		}
		rng, err := NewXoshiro128(seed)
		if err != nil {
			return nil, err
		}
		a.next = rng.Next
	}
	return a, nil
}

// String returns the replacement for s, drawing a new one on first use.
func (a *Anonymizer) String(s string) (string, error) {
	if r, ok := a.forward[s]; ok {
		return r, nil
	}
	n := utf8.RuneCountInString(s)
	if !a.spaceLeft(n) {
		return "", fmt.Errorf("%w (length %d)", ErrExhausted, n)
	}
	r := a.random(n)
	for {
		if _, taken := a.reverse[r]; !taken {
			break
		}
		r = a.random(n)
	}
	a.forward[s] = r
	a.reverse[r] = s
	a.used[n]++
	return r, nil
}

// spaceLeft reports whether some string of n characters is still unused.
func (a *Anonymizer) spaceLeft(n int) bool {
	used := uint64(a.used[n])
	capacity := uint64(1)
	for i := 0; i < n && capacity <= used; i++ {
		hi, lo := bits.Mul64(capacity, uint64(len(a.alphabet)))
		if hi != 0 {
			return true
		}
		capacity = lo
	}
	return used < capacity
}

func (a *Anonymizer) random(n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = a.alphabet[a.next()%uint32(len(a.alphabet))]
	}
	return string(out)
}

// Value returns a copy of v with every string and object key replaced.
// Numbers, booleans and null are kept. Keys are visited in sorted order so a
// seeded Anonymizer is reproducible.
func (a *Anonymizer) Value(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return a.String(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			av, err := a.Value(el)
			if err != nil {
				return nil, err
			}
			out[i] = av
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			ak, err := a.String(k)
			if err != nil {
				return nil, err
			}
			av, err := a.Value(t[k])
			if err != nil {
				return nil, err
			}
			out[ak] = av
		}
		return out, nil
	default:
		return v, nil
	}
}

// Anonymize runs a fresh Anonymizer over v.
func Anonymize(v any, opts Options) (any, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	return a.Value(v)
}
