// Package identity manages the local identity lifecycle: generation,
// rotation and archival. Exactly one identity is active at a time; rotation
// creates a new key version and, per policy, either retires the previous
// key material or keeps it decrypt-capable for older envelopes.
package identity
