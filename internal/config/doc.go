// Package config provides configuration management for the ucs CLI.
//
// Configuration is assembled from three layers, later layers winning:
//
//  1. built-in defaults (localhost:4567, 900 second timeout)
//  2. the system file /opt/ucs/etc/cli_config.json, written by the installer
//  3. the per-user file config.yaml in the configuration directory
//
// The UCS_ENDPOINT environment variable replaces the resulting base URL.
//
// # Configuration Directory
//
// The per-user directory defaults to ~/.ucs. It can be changed with the
// --config-path flag or the UCS_CONFIG_PATH environment variable. Besides
// config.yaml it holds the persisted event filters:
//   - exclude: one regular expression per line, events matching are hidden
//   - include: one regular expression per line, only matching events are shown
//
// The filter files are read each time a command needs them and are never
// written by the CLI.
//
// # File Format
//
// System file:
//
//	{"rest_server_address": "10.0.0.1", "rest_server_port": "4567"}
//
// User file:
//
//	server:
//	  address: head1
//	  port: 4567
//	timeout: 120
//	logFile: /home/user/ucs_cli.log
//	logLevel: warn
package config
