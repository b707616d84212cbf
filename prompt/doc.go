// Package prompt provides InputProvider implementations for the fix loop.
//
//   - Terminal runs a small Bubble Tea program per question: a text input
//     for RequestText and a cursor list for RequestChoice.
//   - Line reads answers line by line from any io.Reader, for piped stdin
//     and dumb terminals.
//   - Scripted replays a fixed list of answers, for tests, the HTTP API and
//     non-interactive CLI runs.
package prompt
