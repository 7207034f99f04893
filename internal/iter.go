// Package internal holds helpers shared between the disarm packages.
package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value sequences, as used to merge the define
// tables of the emulator components.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
