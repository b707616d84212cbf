// Package cms is the sample rule set for a CMS configuration document.
//
// The document root must declare a backend and at least one collection:
//
//	backend:
//	  name: github
//	  repo: octocat/demo
//	collections:
//	  - name: posts
//	    label: Posts
//	    folder: content/posts
//
// Rules run in the order returned by Rules; later rules rely on earlier ones
// having repaired the same position (the backend block must exist before its
// kind can be chosen).
package cms
