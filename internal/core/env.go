package core

import (
	"os"
	"strings"
)

// Env supplies the ambient OS state the engine depends on. The engine never
// reads environment variables or privilege state directly; it asks an Env.
type Env interface {
	// Getenv returns the value of the named variable, or "" if unset.
	Getenv(name string) string

	// HomeDir returns the current user's home directory, or "" if unknown.
	HomeDir() string

	// IsAdmin reports whether the process runs with elevated privileges.
	IsAdmin() bool
}

// OSEnv reads the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(name string) string { return os.Getenv(name) }

func (OSEnv) HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (OSEnv) IsAdmin() bool { return isElevated() }

// MapEnv is a synthetic environment. Variable lookup is case-insensitive,
// matching Windows semantics.
type MapEnv struct {
	Vars  map[string]string
	Home  string
	Admin bool
}

func (e MapEnv) Getenv(name string) string {
	if v, ok := e.Vars[name]; ok {
		return v
	}
	for k, v := range e.Vars {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func (e MapEnv) HomeDir() string { return e.Home }

func (e MapEnv) IsAdmin() bool { return e.Admin }
