// Package mergeop evaluates merge instructions at resolved locations of a
// base document tree.
//
// Each selector instruction kind maps to one Op. Ops mutate the targeted
// container in the base tree and never the input tree; every value taken
// from the input is deep-copied. Shape violations (a keyed update aimed at
// a non-list, a direct assignment aimed at a non-object) surface as
// *TypeMismatchError and abort the merge; a keyed update that finds no
// element with the requested target value only increments the report's
// Unmatched count.
package mergeop
