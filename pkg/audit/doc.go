// Package audit provides audit logging for identity disclosures and other
// security-relevant operations.
//
// Events are emitted as RFC5424 syslog lines. Disclosure events additionally
// persist an append-only row in the access_logs table. Audit failures are
// reported to stderr and never propagate to the request that triggered them.
//
// # Event Types
//
//   - Disclosure events (who saw which fields of which identity)
//   - Auto-provision events
//   - Primary-identity change events
//   - Admin verification events
//   - Authentication and API-key rotation events
//
// # Usage
//
//	audit.Log(audit.DisclosureEvent{...})
package audit
