// Package config loads, validates, and normalizes playerlink configuration.
//
// Configuration lives in a TOML file (default ~/.config/playerlink/config.toml,
// or ./playerlink.toml in the working directory). Every field has a default,
// so a missing file yields a usable configuration; paths are expanded and
// threshold ordering is validated before any pass runs.
package config
