package rain

import "math/rand/v2"

// Charset is the ordered set of glyphs a stream can show.
var Charset = buildCharset()

func buildCharset() []rune {
	set := make([]rune, 0, 80)
	set = appendRange(set, '0', '9')
	set = appendRange(set, 'a', 'z')
	set = appendRange(set, 'A', 'Z')
	set = appendRange(set, 'ﾀ', 'ﾎ') // U+FF80..U+FF8E, half-width katakana
	return append(set, []rune("@#$%&")...)
}

func appendRange(set []rune, lo, hi rune) []rune {
	for r := lo; r <= hi; r++ {
		set = append(set, r)
	}
	return set
}

// Glyph returns the glyph shown by stream id at (col, row). The result
// depends only on its arguments: the generator is reseeded from
// row*col*id on every call, so no per-cell state is kept.
func Glyph(id, col, row int) rune {
	seed := uint64(row) * uint64(col) * uint64(id)
	r := rand.New(rand.NewPCG(seed, 0))
	return Charset[r.IntN(len(Charset))]
}
