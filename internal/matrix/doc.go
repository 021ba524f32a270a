// Package matrix converts a text grid, one row per line and cells separated by single
// spaces, into the JSON array-of-arrays read by the solver.
//
// The grid files mark the start cell with 3 and the finish cell with 4 while the solver
// expects 2 and 3, so the first 3 and then the first 4 of the document are patched.
package matrix
