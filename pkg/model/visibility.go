package model

//go:generate go run github.com/dmarkham/enumer -type Visibility -trimprefix Visibility -transform lower -json -text -sql -output visibility.gen.go

// Visibility is the identity-level coarse access policy.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityFriends
	VisibilityPrivate
	VisibilityOrganization
)
