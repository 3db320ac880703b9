// Package services holds the load orchestrator.
//
// LoadService lists the input files, opens one database session and loads
// each file in its own transaction: parse, derive the table schema,
// replace the table, insert the rows in batches, commit. A file that fails
// at any step is rolled back and reported; the run continues with the next
// file. Cancellation is honoured between files only.
package services
