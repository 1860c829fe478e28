package model

//go:generate go run github.com/dmarkham/enumer -type PermissionLevel -trimprefix PermissionLevel -transform lower -json -text -sql -output permission_level.gen.go

// PermissionLevel is the access grade of a field permission row.
type PermissionLevel int

const (
	PermissionLevelNone PermissionLevel = iota
	PermissionLevelRead
	PermissionLevelWrite
	PermissionLevelAdmin
)
