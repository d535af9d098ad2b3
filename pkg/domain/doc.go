/*
Package domain contains the core domain models for the unimach interpreter.

It defines the fundamental entities of a single-tape Turing machine, such as
Symbols, Transitions, the Tape, and run Results. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Symbol: One of the four tape symbols the interpreter understands (0, 1, _, X).
  - Transition: A single rule of the machine (state, read) -> (state, write, move).
  - Program: An ordered transition table with a halting state.
  - Tape: A fixed-size band of cells with a read/write head.
  - Result: The outcome of a completed run (unary value, steps, final tape).
*/
package domain
