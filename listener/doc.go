// Package listener runs the examiner's HTTP API as a named fx module: it
// listens on start, serves in the background and drains requests on stop.
package listener
