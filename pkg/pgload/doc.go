// Package pgload provides the public types and collaborator interfaces for
// loading a directory of delimited text files into PostgreSQL, one table per
// file, with the table schema inferred from the observed data.
//
// Every run drops and recreates its destination tables. Files are loaded
// sequentially; each file is loaded inside its own transaction so a failure
// in one file never leaves a partially-loaded table and never stops the run.
//
// The concrete implementations live in internal packages:
//
//   - internal/schema: identifier sanitizing, type inference, schema building
//   - internal/loader: table provisioning and batched inserts
//   - internal/services: the per-file load orchestration
//   - internal/csvread: the CSV parser
//   - internal/db: pgx connectors for standard and cloud IAM authentication
package pgload
