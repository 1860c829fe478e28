// Package principal carries the authenticated caller of a request through
// the request context, combining token claims with role capabilities and
// client metadata.
package principal
