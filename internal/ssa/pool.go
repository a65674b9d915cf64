package ssa

import "sync"

// elemPools pools the []Elem scratch buffers split() allocates, keyed
// by split level k (so pool index doubles as a size class: level k
// holds slices of exactly 2^k elements). This avoids a fresh
// allocation of the transform buffer on every large multiplication,
// adapted from the teacher's size-classed sync.Pool approach for its
// own FFT scratch buffers, applied here to NTT ring elements instead
// of raw big.Word slices.
var elemPools [33]sync.Pool

func acquireElemSlice(k uint64) []Elem {
	if k >= uint64(len(elemPools)) {
		return make([]Elem, uint64(1)<<k)
	}
	if v := elemPools[k].Get(); v != nil {
		return v.([]Elem)
	}
	return make([]Elem, uint64(1)<<k)
}

func releaseElemSlice(k uint64, s []Elem) {
	if k >= uint64(len(elemPools)) {
		return
	}
	elemPools[k].Put(s)
}
