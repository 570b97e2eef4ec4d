// Package diagnostic defines the structured error/warning value shared by
// every rendering stage.
//
// A [Diagnostic] is a value type: severity, an optional machine-readable
// [Code], a human message, an optional primary [Location], zero or more
// related locations, an optional hint, and an ordered chain of
// pre-stringified causes. Diagnostics are constructed at the point of
// failure and consumed at an API boundary (CLI printer, WASM/bindings
// serializer, etc.); they never hold on to live upstream error objects, so
// they can cross process or language boundaries freely.
package diagnostic
