package sheet

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Hashed identities land in 10000..109999 so slug-style keys never
// collide with plausible hand-numbered product IDs.
const (
	hashedIDOffset  = 10000
	hashedIDModulus = 100000
)

// ResolveProductID maps a human-chosen grouping key to a stable positive
// integer. Numeric keys pass through verbatim; anything else is hashed
// together with the product name into the bounded range above. Two
// distinct slugs can hash to the same id; that is accepted legacy
// behavior of the sheet format rather than something to repair here.
func ResolveProductID(key, name string) int {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil && n > 0 {
		return n
	}
	h := fnv.New32a()
	h.Write([]byte(key + name))
	return hashedIDOffset + int(h.Sum32()%hashedIDModulus)
}
