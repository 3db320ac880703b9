// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the read operations the loader performs on its input
// directory, enabling testability through an in-memory implementation while
// maintaining compatibility with the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
