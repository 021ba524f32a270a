// Package moves turns a solver result, a JSON array of [row, column] positions, into
// the space separated U/D/L/R move string submitted as a solution.
package moves
