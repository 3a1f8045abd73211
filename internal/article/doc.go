// Package article provides the canonical article and reference-set types
// for the newsgate engine.
//
// This package contains type definitions and field-resolution helpers only.
// All other internal packages import article; article imports nothing
// internal. This keeps it the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - An Article is a flat map of placeholder name to string value
//   - "id" is required and stable; everything else is optional
//   - A field may carry a raw shadow variant under "<name>::full" which
//     matching must prefer over the display variant
//   - "tags" is newline-delimited; consumers see it as a list
package article
