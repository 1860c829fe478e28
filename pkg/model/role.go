package model

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -text -sql -output role.gen.go

// Role is the account-level role held by a user.
type Role int

const (
	RoleAdmin Role = iota
	RoleManager
	RoleUser
	RoleViewer
)
