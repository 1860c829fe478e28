// Package disclosure computes the field subset of an identity a given
// principal is allowed to see. All role and permission checks run through a
// single ordered pipeline: context template, ownership short-circuit,
// visibility gate, then field-permission narrowing. Permission rows only
// ever restrict the result, never widen it.
package disclosure
