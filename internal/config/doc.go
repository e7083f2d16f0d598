// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. It provides typed
// settings for the server, the database, token verification, the narrative
// generator and the insight computations.
package config
