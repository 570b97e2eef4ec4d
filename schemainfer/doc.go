// Package schemainfer proposes Field Schema declarations for a new Quill
// package by inspecting a sample document's frontmatter.
//
// Authoring a Quill means hand-writing a `fields` table for every
// frontmatter key a template consumes. Given one or more representative
// documents, [Inferrer.Infer] walks the frontmatter YAML and produces a
// best-effort [fieldschema.Field] list: YAML scalars map onto the field
// type vocabulary (ISO 8601 strings become dates, block scalars become
// markdown), comments become descriptions, and observed values can be
// recorded as defaults or examples. [Merge] widens declarations across
// multiple samples.
//
// The output is a starting point for a package author to edit, not a
// finished schema: required flags, enums, and UI hints still need a human.
package schemainfer
