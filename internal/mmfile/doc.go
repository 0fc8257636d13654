// Package mmfile provides platform-specific helpers for memory-mapping archive files.
package mmfile
