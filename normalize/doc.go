// Package normalize applies a Quill's declared field schema to a parsed
// document: filling declared defaults, coercing scalar types, and
// failing fast on a missing required field or an irreconcilable type
// mismatch. Cards are normalized element-wise against their own Card
// Schema. Fields the schema does not declare pass through unmodified.
package normalize
