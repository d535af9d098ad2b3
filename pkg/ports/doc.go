/*
Package ports defines the driven ports (interfaces) for the unimach interpreter.

These interfaces decouple the core logic from external implementations, allowing
the run history to live in memory, on disk or in Redis without the callers
changing.

# Key Interfaces

  - RunStore: Responsible for persisting and listing finished run records.

The package also ships a reusable contract test suite (RunStoreContract) that
every adapter's test file runs against its own implementation.
*/
package ports
