package maskgen

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A Collator keeps scratch buffers and is not safe for concurrent use.
var collators = sync.Pool{New: func() any { return collate.New(language.Und) }}

// compareText orders strings by the root-locale collation, so "id" sorts
// before "Name" and "b" before "B". Strings the collation treats as equal
// fall back to byte order, keeping the result total.
func compareText(a, b string) int {
	c := collators.Get().(*collate.Collator)
	r := c.CompareString(a, b)
	collators.Put(c)
	if r != 0 {
		return r
	}
	return strings.Compare(a, b)
}
