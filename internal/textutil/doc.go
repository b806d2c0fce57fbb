// Package textutil provides the small text helpers shared by masters, the
// catalog importer and the CLI: reference ids (Idify), tag stripping and title
// shortening for slide titles, and token fingerprints used to rank catalog
// search results.
package textutil
