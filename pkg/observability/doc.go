/*
Package observability provides tools for monitoring machine runs from the outside.

It includes lifecycle hooks for logging transitions, a combinator for attaching
several observers to one run, and a trail recorder for capturing step events
during execution.
*/
package observability
