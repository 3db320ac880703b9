package pgload

// FileScanner lists the input files of a run.
type FileScanner interface {
	// ListFiles returns the paths of the regular files directly inside dir whose
	// base name matches pattern, sorted by name.
	// Returns ErrSourceNotFound if dir does not exist or is not a directory.
	ListFiles(dir, pattern string) ([]string, error)
}
