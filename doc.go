// Package examiner checks and repairs Netlify CMS configuration documents.
//
// The work is split across packages:
//   - node: the immutable document tree
//   - engine: rules, Examine (report) and Fix (interactive repair)
//   - cms: the CMS rule set
//   - prompt, repocheck, document: input, GitHub lookups and YAML
//
// This package hosts the long-running service: NewApp wires fx modules,
// such as the HTTP API from package api, around a shared logger.
package examiner
