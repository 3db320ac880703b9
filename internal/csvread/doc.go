// Package csvread parses delimited text files into pgload datasets.
//
// The first record is the header. Every later record must have the same
// number of fields. Before parsing, a byte order mark is removed and invalid
// UTF-8 is replaced with U+FFFD.
//
// Each column gets a storage class from a pass over its non-missing cells,
// and every cell is converted to the matching Go value:
//
//	int64     all cells are base-10 integers that fit in 64 bits
//	float64   all cells are decimal or scientific numbers
//	bool      all cells are true or false, in any case
//	datetime  all cells carry a date and a time of day
//	date      all cells are calendar dates
//	string    anything else, including columns with no values at all
//
// Missing cells (empty, or one of the usual NA markers) become nil.
package csvread
