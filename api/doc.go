// Package api exposes examination and fixing of CMS config documents over
// HTTP.
//
// Routes:
//
//	POST /v1/examine  YAML document in, JSON report out
//	POST /v1/fix      JSON {"document": "...", "answers": [...]} in,
//	                  JSON {"document": "...", "ok": ..., "outcomes": [...]} out
//	GET  /healthz     liveness
//
// Fixing over HTTP cannot prompt anyone, so every question a remediation
// asks is answered from the request's answers, in order. When they run out
// the response is 422 with the questions answered so far.
//
// Module wires the handler and its listener config into an fx graph; see
// the serve command.
package api
