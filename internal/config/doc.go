// Package config loads and merges mdproof configuration.
//
// Effective config is built as defaults <- config file <- environment <- CLI
// flag overrides. The file lives under the platform config directory as
// JSON. The core pipeline treats the result as an opaque context object
// supplied at startup; nothing reads ambient state after that.
package config
