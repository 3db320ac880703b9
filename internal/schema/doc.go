// Package schema derives table definitions from parsed datasets.
//
// It owns the three pure steps between parsing and provisioning:
// turning labels into safe identifiers (Sanitize), mapping the parser's
// storage classes to database types (InferType), and assembling the ordered
// column list of a table (Build).
package schema
