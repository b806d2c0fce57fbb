// Command baldr parses lecture presentations, resolves their media against the
// catalog and serves the catalog over HTTP.
//
// Subcommands:
//   - parse: normalize a presentation file and list its slides
//   - resolve: parse and resolve every media URI of a presentation
//   - catalog: import sidecars, list, show and remove catalog records
//   - serve: run the catalog REST API
//   - config: write, show and validate the configuration file
//
// Exit codes follow the error markers in internal/services.
package main
