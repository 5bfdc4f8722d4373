// Package domain defines core data models and interfaces shared across the core.
// It contains plain types (keys, identities, contacts, attribution), the error
// taxonomy, and collaborator contracts (interfaces) only.
package domain
