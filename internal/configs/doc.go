// Package configs resolves credstore configuration.
//
// Configuration is layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (store at /opt/credential_store, gpg cipher)
//  2. TOML config file (/etc/credstore/config.toml, or the per-user
//     config dir, or the file named by CREDSTORE_CONFIG)
//  3. CREDSTORE_* environment variables
//
// Workflows receive the resolved *Config explicitly; nothing in this
// package is consulted ambiently after Load returns. The passphrase file
// itself is read by the store package at operation time, never cached here.
package configs
