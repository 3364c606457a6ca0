// Package env reads process environment variables with defaults.
package env

import "os"

// Get looks up key in the environment, falling back when unset or empty.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
