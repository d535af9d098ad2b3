/*
Package encoding implements the unary code format for machine tables.

A machine is a string over the alphabet {0, 1}. Runs of zeros carry the
values; ones separate them:

  - `1` separates the five fields of a rule,
  - `11` separates rules,
  - `111` separates the machine from its input word (composite form).

Each rule has exactly five fields in fixed order: state read from, symbol
read, state switched to, symbol written, head movement. A field of n zeros
means state n, the n-th symbol (0, 1, _, X) or the n-th direction (L, R).

The decoder performs no well-formedness checks beyond field counts and the
symbol/direction run lengths. In particular state numbers are taken as-is,
so a zero-length field decodes to state q0.
*/
package encoding
