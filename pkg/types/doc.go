// Package types holds the public vocabulary shared by the archive decoder,
// the asset library and the CLI: the error taxonomy and the diagnostics
// report collected while decoding.
//
// Decoding never stops at the first broken member. Failures local to one
// member, record or link are caught, logged and added to a Report; only a
// file that is not an archive at all fails the call that opened it.
package types
