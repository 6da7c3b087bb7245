package render

import "math/rand/v2"

const tagAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TagLength is the number of characters in a Tag.
const TagLength = 4

// Tag marks a sanitized opaque value. It is drawn fresh for every rendered
// value so user text that happens to look like a marker is not confused with
// one.
type Tag string

// NewTag draws a Tag from src. A nil src seeds a private PCG source from the
// runtime generator so concurrent renders never share state.
func NewTag(src rand.Source) Tag {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	r := rand.New(src)
	var b [TagLength]byte
	for i := range b {
		b[i] = tagAlphabet[r.IntN(len(tagAlphabet))]
	}
	return Tag(b[:])
}
