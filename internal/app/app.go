package app

const (
	Version = "0.1"
	Name    = "wallfetch"
)
