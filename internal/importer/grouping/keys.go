package grouping

import (
	"fmt"
	"strings"
)

// KeySet tracks the business keys handed out during one run so that two
// rows producing the same raw key still end up with distinct aggregates.
type KeySet struct {
	used map[string]struct{}
	seq  int
}

func NewKeySet() *KeySet {
	return &KeySet{used: make(map[string]struct{})}
}

// Claim picks the first non-empty candidate (or generates one with the
// given prefix) and de-duplicates it: first by appending the contract
// number, then by a numeric suffix.
func (k *KeySet) Claim(candidates []string, contractNo, genPrefix string) string {
	key := ""
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			key = c
			break
		}
	}
	if key == "" {
		k.seq++
		key = fmt.Sprintf("%s-%03d", genPrefix, k.seq)
	}

	if !k.taken(key) {
		k.claim(key)
		return key
	}
	if contractNo = strings.TrimSpace(contractNo); contractNo != "" && contractNo != key {
		withContract := key + "-" + contractNo
		if !k.taken(withContract) {
			k.claim(withContract)
			return withContract
		}
		key = withContract
	}
	for n := 2; ; n++ {
		suffixed := fmt.Sprintf("%s-%d", key, n)
		if !k.taken(suffixed) {
			k.claim(suffixed)
			return suffixed
		}
	}
}

func (k *KeySet) taken(key string) bool {
	_, ok := k.used[key]
	return ok
}

func (k *KeySet) claim(key string) {
	k.used[key] = struct{}{}
}
