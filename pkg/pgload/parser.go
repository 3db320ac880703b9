package pgload

// Parser turns one input file into a Dataset.
// Failures wrap ErrParse.
type Parser interface {
	Parse(path string) (Dataset, error)
}
