package analysis

import (
	"hash/maphash"

	"github.com/san-kum/wolfca/internal/automaton"
)

// DetectCycle finds the first generation that reappears later in history.
// start is the index of its first occurrence and period the distance to the
// repeat. ok is false when no generation repeats.
func DetectCycle(history []automaton.Generation) (start, period int, ok bool) {
	seed := maphash.MakeSeed()
	seen := make(map[uint64][]int, len(history))

	for i, g := range history {
		h := maphash.Bytes(seed, stateBytes(g))
		for _, j := range seen[h] {
			if equal(history[j], g) {
				return j, i - j, true
			}
		}
		seen[h] = append(seen[h], i)
	}
	return 0, 0, false
}

func stateBytes(g automaton.Generation) []byte {
	b := make([]byte, len(g))
	for i, s := range g {
		b[i] = byte(s)
	}
	return b
}

func equal(a, b automaton.Generation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
