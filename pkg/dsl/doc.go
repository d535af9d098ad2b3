/*
Package dsl provides a fluent builder for constructing transition tables in Go.

It allows developers to define machines with type-checked states and symbols
instead of relying on YAML files or raw binary codes. This is particularly
useful for generated machines, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	package main

	import (
		"context"
		"fmt"

		"github.com/mfeilner/unimach"
		"github.com/mfeilner/unimach/pkg/domain"
		"github.com/mfeilner/unimach/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		// Erase zeros until the first blank, then halt in q2.
		b.From(1, domain.SymbolZero).Right(1, domain.SymbolBlank)
		b.From(1, domain.SymbolBlank).Right(2, domain.SymbolBlank)

		machine, err := b.Machine(unimach.WithWord("000"))
		if err != nil {
			panic(err)
		}

		result, err := machine.Run(context.Background())
		if err != nil {
			panic(err)
		}
		fmt.Printf("halted in %s after %d steps\n", result.FinalState, result.Steps)
	}
*/
package dsl
