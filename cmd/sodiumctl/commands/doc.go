// Package commands defines the sodiumctl CLI.
//
// Commands
//
//   - secretbox seal|open     Authenticated symmetric encryption
//   - sign ...                Ed25519 keypairs, signatures and key conversion
//   - scalarmult              X25519 scalar multiplication
//   - pwhash                  scrypt password hashing
//   - hex encode|decode       Hex codec
//   - text encode|decode      Strict UTF-8 transcoding
//
// Binary arguments are hex on the command line. Flags marked --text read a
// message as UTF-8 instead.
//
// # Implementation
//
// The root command loads configuration and builds the bridge client lazily,
// so codec commands never dial a remote backend.
package commands
