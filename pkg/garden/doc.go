// Package garden implements the fontgarden repository: a directory-backed
// store that aggregates glyphs from several font sources, partitions them
// into named, mutually exclusive sets, and reconstructs per-source font
// documents from any subset of sets and sources.
//
// # Model
//
// A [Fontgarden] maps set names to [Set] values. A set owns shared glyph
// metadata ([GlyphRecord]) plus per-source drawings: each [Source] holds
// named [Layer] values, exactly one of which is flagged default. A glyph
// name may carry metadata in at most one set; each set's claim on the
// glyph namespace is its coverage, recomputed on demand by
// [Set.Coverage].
//
// # Operations
//
// [Load] and [Fontgarden.Save] move the tree to and from disk.
// [Fontgarden.Import] merges glyphs from a [ufo.Font] into the store,
// routing names that already live in a set back to that set.
// [Fontgarden.Export] assembles per-source font documents for a glyph
// selection closed under composite dependencies ([Closure]).
//
// Save replaces the target directory wholesale and is not crash-atomic;
// callers that need atomicity should save to a temporary path and rename.
package garden
