// Package ini reads and patches INI files without disturbing their layout.
//
// Parse builds a Document: the raw lines, kept verbatim, plus an ordered
// section → key → value view used only for existence checks. Patch rewrites
// the value of selected key=value lines inside one section and copies every
// other line through untouched, so comments, blank lines, ordering, unknown
// keys and other sections survive byte-for-byte. The only normalization is
// that lines are re-joined with "\n".
//
// Decode and Encode keep a file's byte-order mark and UTF-16 encoding stable
// across a rewrite.
package ini
