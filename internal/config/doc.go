// Package config holds the vgacon settings and loads them from layered
// sources.
//
// Precedence, lowest to highest:
//
//   - built-in defaults (Default)
//   - a TOML file
//   - VGACON_* environment variables
//   - command-line flags, applied by the caller
//
// File and environment layers are read into plain maps by the loader
// package, merged with loader.DeepMerge, and decoded over the defaults.
// The watcher package reports edits to the file so the running console
// can pick up the live-reloadable settings.
package config
