// Package dag holds the include graph of an amalgamation run and the
// algorithms over it.
//
// # Building
//
// A Builder resolves header keys (slash separated logical paths such as
// ghost/core/ghost_has.h) to files through a Locator, parses each file once
// through a Loader, and stores the result as a Record. Resolution is depth
// first in include order, driven by an explicit stack. Each key is parsed at
// most once; a key that cannot be located fails the run with a NotFoundError
// naming the file that included it.
//
// # Ordering
//
// Sort produces the emission order in two steps:
//
//  1. A depth-first post-order walk over every record, in discovery order.
//     It also detects cycles: meeting a header that is already on the walk
//     stack is fatal (CycleError with the full stack) unless the header or
//     the one including it belongs to the core namespace, whose members
//     include each other freely and are treated as one unit.
//  2. An insertion sort that only ever swaps neighbours. A header moves ahead
//     of its predecessor when it does not directly depend on it and it wins
//     the tie-breaks: non-leaf before leaf, lower category index, then key.
//
// The result is deterministic for a given graph.
package dag
