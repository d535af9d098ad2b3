/*
Package unimach is a universal Turing machine interpreter: it decodes
machines from a binary alphabet encoding and executes them on a bounded
tape, with structured tracing, persistence and observability built in.

It separates the machine description (Program), the mutable store (Tape)
and the execution loop (Engine), so the core can be embedded in any host:
CLI, HTTP service, or your own tooling.

# Encoding

A machine is a string over {0, 1}. Runs of 0s carry values, runs of 1s
delimit them: "1" separates the five fields of a transition (from-state,
read symbol, to-state, write symbol, head move), "11" separates
transitions, and "111" separates the machine from an optional input word.
Symbols map from run lengths (1="0", 2="1", 3=blank, 4=marker), moves too
(1=left, 2=right). The machine starts in state q1 at the first input cell
and halts when it enters the target state of the last transition.

# Key Features

  - Deterministic Execution: the same code and word always reproduce the
    same result, step count and final tape.
  - Lazy Tracing: Trace yields one record per step through a restartable
    iterator; nothing is buffered up front.
  - Hexagonal Architecture: run history persistence (memory, Redis, file)
    and transports are adapters around a small core.
  - Lifecycle Hooks: step, fallback and halt events feed logging and
    Prometheus collectors without touching the execution loop.

# Usage

Build a machine from its code and an input, then run it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/mfeilner/unimach"
		"github.com/mfeilner/unimach/pkg/machines"
	)

	func main() {
		// Add 2 and 4 with the built-in addition machine.
		m, err := unimach.New(machines.Addition, unimach.WithOperands(2, 4))
		if err != nil {
			log.Fatal(err)
		}

		result, err := m.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.Value) // 6

		// Watch it work, step by step.
		for record, err := range m.Trace(context.Background()) {
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("step %d: %s head=%d\n", record.Step, record.State, record.Head)
		}
	}
*/
package unimach
