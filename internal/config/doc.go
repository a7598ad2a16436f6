// Package config loads, normalizes, and validates dubmux configuration data.
//
// It supplies defaults matching the usual release folder layout ("Rus Sound",
// "Rus Subs", "надписи"), expands user paths including tilde shortcuts, and
// reads TOML files from ~/.config/dubmux/config.toml or ./dubmux.toml.
// Command-line flags are applied on top by the CLI after Load returns.
package config
