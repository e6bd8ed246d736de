// Package diagnostic provides structured warnings and errors raised while
// planning observable types.
//
// Key types:
//   - Descriptor: a fixed code, title, message format and default severity
//   - Diagnostic: a descriptor instance with substitution arguments and a
//     source position
//   - Reporter: the channel a host supplies to receive diagnostics
//   - Diagnostics: a collector bucketing diagnostics by severity
//   - Printer: renders diagnostics as "file:line:col: severity CODE: message"
package diagnostic
