// Package resolver turns media URIs into Assets and Samples by querying a
// catalog client.
//
// Lookups are memoized per authority. Concurrent requests for the same URI share
// one catalog fetch, and an asset reached through its uuid is cached under its
// ref as well (and the other way round). ResolveAll fans out over a URI set with
// a bounded number of workers and follows URIs linked from the fetched records
// (cover images and similar) in further rounds.
//
// After resolution the accessors Asset, Sample and MultipartSelection answer
// from the cache only; asking for a URI that was never resolved is a
// programming error reported as ErrNotResolved.
package resolver
