// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Input file discovery for a load run
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pgload/internal/files/filesystem"
//	    "github.com/vvka-141/pgload/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner()
//	paths, err := fileScanner.ListFiles("./data", "*.csv")
package files
