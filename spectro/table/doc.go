// Package table reads and writes the two spectrum columns of a FITS binary
// table.
//
// Only the first extension (HDU 1) is consulted. Columns are looked up by
// name, exactly first and then case-insensitively, so "wave" also matches
// a "WAVE" column. Scalar numeric columns yield one sample per row; vector
// columns are flattened row by row.
package table
