package model

//go:generate go run github.com/dmarkham/enumer -type Context -trimprefix Context -transform lower -json -text -sql -output context.gen.go

// Context is the relational frame under which a user presents identity data.
type Context int

const (
	ContextLegal Context = iota
	ContextDisplay
	ContextSocial
	ContextProfessional
	ContextUsername
)
