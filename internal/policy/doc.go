// Package policy evaluates the configurable send/receive rules of the core.
//
// Four independent booleans form the configuration; all sixteen combinations
// are valid and must not interfere with one another. Violations are typed so
// callers can present specific, actionable messages, the one error category
// that reflects caller configuration rather than cryptographic state.
package policy
