package model

// Cmd is a model of the OS command.
type Cmd struct {
	Name string
	Args []string
	Env  []string
	Dir  string
	Log  bool
}
