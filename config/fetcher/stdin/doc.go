// Package stdin implements config.DataFetcher for a stream, normally the
// process's standard input, so a document can be piped in with "-".
package stdin
