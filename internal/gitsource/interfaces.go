package gitsource

import "github.com/tallywatch/tallywatch/internal/snapshot"

// Compile-time conformance checks: FileHistory serves as both the
// revision lister and the content fetcher for the aggregator.
var (
	_ snapshot.Lister  = (*FileHistory)(nil)
	_ snapshot.Fetcher = (*FileHistory)(nil)
)
