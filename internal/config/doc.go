// Package config loads the optional HCL project file that carries the
// per-library settings of an amalgamation: the reserved library name, the
// header search roots, the core namespace and the category order.
//
// Expressions in the file are evaluated with the variable "prefix" bound to
// the identifier prefix of the run and the functions upper and lower, so an
// output name can be written as "${lower(prefix)}_ghost.h".
package config
