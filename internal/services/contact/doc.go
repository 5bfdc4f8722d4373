// Package contact implements the contact trust model: the
// unverified/verified/revoked state machine, blocking, and key rotation.
//
// Rotating a contact's keys always resets trust to unverified and archives
// the previous key material: a new key never inherits trust earned by an old
// one. Fingerprint, short fingerprint, SAS words and the recipient key id are
// recomputed from the new key, never copied.
package contact
