// Package extrules generates rule-description files for third-party IaC
// linters. It scrapes each linter's documentation (Markdown tables in READMEs,
// string literals in source files) and emits normalized rule metadata that an
// analyzer plugin loads at runtime.
//
// This package contains domain types, interfaces and the Markdown table
// scanner, following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, http/).
package extrules
