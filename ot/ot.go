package ot

import "fmt"

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// Tag identifies a feature, script or table: four ASCII characters packed
// big-endian into a uint32, e.g. 'calt' = 0x63616c74.
type Tag uint32

// T returns the Tag for a string of up to four characters. Shorter strings are padded
// with spaces, longer ones are cut.
//
//	T("calt")
func T(t string) Tag {
	var tag Tag
	for i := 0; i < 4; i++ {
		c := byte(' ')
		if i < len(t) {
			c = t[i]
		}
		tag = tag<<8 | Tag(c)
	}
	return tag
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// --- Option ----------------------------------------------------------------

// Option is a value which may be absent.
//
// Within this module it is used as Option[GlyphIndex], where None stands for
// "matched, but not substituted".
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.ok }
func (o Option[T]) IsNone() bool { return !o.ok }

// Unwrap returns the value together with its presence.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the value, or def if o is None.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// String prints "null" for None, matching how tree dumps show unsubstituted glyphs.
func (o Option[T]) String() string {
	if !o.ok {
		return "null"
	}
	return fmt.Sprintf("%v", o.value)
}
