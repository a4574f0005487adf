package surrealdb

// NewManagerWithDB exposes newManagerWithDB to external test packages so the
// integration test helper can build a Manager without importing this
// package's test internals (which would create an import cycle through
// tests/common).
var NewManagerWithDB = newManagerWithDB
