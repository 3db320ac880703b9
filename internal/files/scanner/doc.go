// Package scanner lists the input files of a load run.
//
// Only the direct children of the source directory are considered;
// subdirectories are never descended into. Files are selected by a glob
// pattern on their base name and returned in lexicographic order, which is
// the order the orchestrator loads them in.
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use with the OS filesystem and testing
// with in-memory filesystems.
package scanner
