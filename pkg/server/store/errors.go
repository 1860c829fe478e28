package store

import "errors"

// ErrIdentityNotFound is returned when no identity matches, even after fallback.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrDuplicateIdentity is returned when a (user, context, locale) row already exists.
var ErrDuplicateIdentity = errors.New("identity already exists for this context and locale")

// ErrUserNotFound is returned when an account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrPermissionNotFound is returned when a field-permission row does not exist.
var ErrPermissionNotFound = errors.New("field permission not found")

// ErrDuplicatePriority is returned when a (user, context) priority row already exists.
var ErrDuplicatePriority = errors.New("context priority already exists")

// ErrGrantNotFound is returned when an authorization code is unknown or already used.
var ErrGrantNotFound = errors.New("authorization grant not found")

// ErrClientNotFound is returned when an OAuth client is not registered.
var ErrClientNotFound = errors.New("oauth client not found")
