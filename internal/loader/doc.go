// Package loader writes a parsed dataset into its destination table.
//
// Both steps run inside the caller's transaction:
//   - Provision drops any existing table of the same name and creates it from a TableSchema
//   - LoadRows inserts the dataset's rows in batches
//
// Neither step retries or commits. A failure is returned wrapped in
// pgload.ErrDatabase and the caller rolls back.
package loader
