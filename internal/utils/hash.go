package utils

import "hash/fnv"

func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// StableIndex maps key onto [0, n) identically on every run. n must be positive.
func StableIndex(key string, n int) int {
	return int(HashStringToUint64(key) % uint64(n))
}
