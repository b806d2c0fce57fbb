// Package api serves the media catalog over HTTP. It is the server side of
// catalog.HTTPClient: a resolver configured with the http backend talks to
// another baldr process running `baldr serve`.
//
// # Endpoints
//
// GET /healthcheck: liveness probe, answers "ok".
//
// GET /api/assets: catalog summary, optionally ranked with ?q=<query>.
//
// GET /api/assets/:scheme/:authority: the full record of one asset, looked up
// by ref or uuid. Unknown assets answer 404.
//
// # Design Notes
//
// Handlers depend on the small Store interface so tests can run against a
// temporary SQLite catalog. DTOs use camelCase JSON tags; timestamps use
// RFC3339 with milliseconds. Every response carries an X-Request-ID header
// which is also attached to the request's log lines.
package api
