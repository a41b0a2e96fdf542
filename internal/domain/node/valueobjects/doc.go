// Package valueobjects holds immutable per-protocol node configurations.
// Each type validates its fields at construction and renders itself into
// the client URI for that protocol (ToURI); the Clash proxy map is built
// from these types by the subscription package's clashrender.go
// (spec.md §4.1 "Clash config rendering").
package valueobjects
