// Package resolver picks the single identity record that best matches a
// requested (context, locale) pair for a user, degrading gracefully through
// locale-relaxed, primary and priority-table fallbacks. It also
// auto-provisions a minimal display identity the first time an owner
// resolves with no identities at all.
package resolver
