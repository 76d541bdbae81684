// Package logging assembles the slog logger every displaysync component
// receives.
//
// A single Options value decides where output goes (the console or an
// append-only file next to the INI file), how timestamps are rendered, and
// whether records are human-readable lines or JSON. The console handler emits
// one "[YYYY-MM-DD HH:MM:SS] message" line per record; the file destination
// takes an advisory lock around every append so overlapping runs never
// interleave partial lines.
//
// Components never consult global log state: construct one logger with New
// and pass it down. NewNop serves tests and wiring code that cannot fail.
package logging
