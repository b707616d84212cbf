// Package config loads the examiner's own settings.
//
// Loading is a pipeline of four steps, each behind an interface:
//   - DataFetcher returns raw bytes (config/fetcher/file, config/fetcher/stdin)
//   - Parser decodes them, optionally into a colon-separated section
//     (config/parser/yaml)
//   - Defaulter fills in unset values
//   - Validator rejects inconsistent values
//
// Settings is the examiner's settings document. Load reads it from a file,
// or returns the defaults when no file is given:
//
//	settings, err := config.Load("examiner.yaml")
//
// A single section can be loaded with Provider:
//
//	provider := config.Provider(&config.ServeSettings{}, "serve")
//	serve, err := provider(yamlparser.NewParser(), fetcher)
package config
