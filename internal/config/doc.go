// SPDX-License-Identifier: MIT

// Package config loads the playlistgen job configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file
// (strict: unknown keys are rejected), the process environment (optionally
// seeded from a .env file), and finally command-line flags applied by the
// caller.
package config
