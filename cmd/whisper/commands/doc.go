// Package commands implements the whisper CLI.
//
// The CLI is a thin wrapper over the core: it wires the file stores, the
// replay database and the policy configuration, then delegates to the
// orchestration service. Envelopes are read from and written to standard
// streams; the core itself never owns a transport.
package commands
