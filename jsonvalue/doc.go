// Package jsonvalue provides an ordered JSON value model and a deterministic
// serializer for it.
//
// A Value is a tagged variant over null, bool, number, string, array and
// object. Objects keep their members in insertion order and numbers keep
// their literal text, so a document that is parsed and marshaled again
// produces the same bytes as a compact rendering of the input. This matters
// when the bytes are signed: two logically equal objects whose keys were
// inserted in a different order serialize differently, and so yield
// different signatures. Keys are never re-sorted.
package jsonvalue
