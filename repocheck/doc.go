// Package repocheck looks up GitHub repositories.
//
// GitHub satisfies the repository checker the CMS rules use to confirm a
// configured "owner/name" exists. Repositories found to exist are cached
// for a while, with a size bound; misses are always asked again.
package repocheck
