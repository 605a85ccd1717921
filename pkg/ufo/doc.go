// Package ufo reads and writes Unified Font Object (UFO) packages.
//
// The package covers the UFO v3 subset needed for glyph interchange:
// the font-level property lists (metainfo, fontinfo, lib, layercontents),
// named glyph layers with exactly one default layer, and the GLIF
// format-2 glyph codec including component references and the embedded
// lib dictionary.
//
// # Structure
//
// A [Font] owns an ordered list of [Layer] values; each layer maps glyph
// names to [Glyph] values. Property lists are handled by howett.net/plist,
// GLIF files by encoding/xml.
//
// # File naming
//
// [FileNameForGlyphName] and [FileNameForLayerName] implement the
// UFO user-name-to-file-name transliteration, which keeps names unique
// on case-insensitive filesystems and avoids OS-reserved identifiers.
package ufo
