package changeset

import (
	"fmt"
	"regexp"
	"strconv"
)

// Address identifies one sentence within a proofreading run: the document's
// path plus the sentence's ordinal index in that document. Addresses are
// unique within a run but not stable across re-parses after a file mutation.
type Address struct {
	File  string
	Index int
}

// Label renders the address in its serialized form, e.g.
// "@@S000003|notes/intro.md@@".
func (a Address) Label() string {
	return fmt.Sprintf("@@S%06d|%s@@", a.Index, a.File)
}

func (a Address) String() string { return a.Label() }

var labelPattern = regexp.MustCompile(`^@@S(\d+)\|([^@]+)@@$`)

// ParseLabel parses the serialized label form back into an Address.
func ParseLabel(label string) (Address, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Address{}, fmt.Errorf("malformed address label: %q", label)
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return Address{}, fmt.Errorf("malformed address label: %q", label)
	}
	return Address{File: m[2], Index: idx}, nil
}
