// Package config loads inkwell settings from TOML files and keeps
// them current while the process runs.
//
// Settings are optional at every level. Load starts from Default and
// overlays whatever the file provides, so a missing file or a partial
// one is never an error; only unreadable or malformed TOML is.
//
// A Watcher can be attached to the settings file to deliver reloaded
// Settings as the file changes on disk.
package config
