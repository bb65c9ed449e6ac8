package config

import (
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Resolver turns environment-supplied directory roots into validated
// absolute paths. It never guesses a default for a security-sensitive root:
// when no candidate variable holds an absolute path the root is unavailable.
type Resolver struct {
	env core.Env
}

// NewResolver creates a Resolver reading from env.
func NewResolver(env core.Env) *Resolver {
	return &Resolver{env: env}
}

// Lookup returns the value of the first variable in names that is both
// non-empty and an absolute path.
func (r *Resolver) Lookup(names ...string) (string, bool) {
	for _, name := range names {
		val := strings.TrimSpace(r.env.Getenv(name))
		if val == "" || !filepath.IsAbs(val) {
			continue
		}
		return filepath.Clean(val), true
	}
	return "", false
}

// ─── Named Roots ─────────────────────────────────────────────────────────────

// UserProfile returns %USERPROFILE%.
func (r *Resolver) UserProfile() (string, bool) { return r.Lookup("USERPROFILE") }

// LocalAppData returns %LOCALAPPDATA%.
func (r *Resolver) LocalAppData() (string, bool) { return r.Lookup("LOCALAPPDATA") }

// AppData returns the roaming %APPDATA% directory.
func (r *Resolver) AppData() (string, bool) { return r.Lookup("APPDATA") }

// Temp returns the user temp directory (%TEMP%, then %TMP%).
func (r *Resolver) Temp() (string, bool) { return r.Lookup("TEMP", "TMP") }

// SystemRoot returns the Windows directory (%SYSTEMROOT%, then %WINDIR%).
func (r *Resolver) SystemRoot() (string, bool) { return r.Lookup("SYSTEMROOT", "WINDIR") }

// Public returns the shared user profile (%PUBLIC%).
func (r *Resolver) Public() (string, bool) { return r.Lookup("PUBLIC") }

// RecoveryRoot returns the directory under which recovery batches are kept.
// This is the one root with a fixed fallback: when no temp directory resolves
// it is ".<app>_recovery" in the user's home. It returns false only when the
// home directory is unknown too.
func (r *Resolver) RecoveryRoot(app string) (string, bool) {
	if tmp, ok := r.Temp(); ok {
		return tmp, true
	}
	home := r.env.HomeDir()
	if home == "" || !filepath.IsAbs(home) {
		return "", false
	}
	return filepath.Join(home, "."+app+"_recovery"), true
}

// ─── Protected Roots ─────────────────────────────────────────────────────────

// NeverClearPaths returns directories whose contents must never be cleared
// wholesale. Roots whose variable is unset are omitted.
func (r *Resolver) NeverClearPaths() []string {
	var paths []string
	if w, ok := r.SystemRoot(); ok {
		paths = append(paths,
			w,
			filepath.Join(w, "System32"),
			filepath.Join(w, "SysWOW64"),
			filepath.Join(w, "WinSxS"),
			filepath.Join(w, "assembly"),
			filepath.Join(w, "System32", "config"),
			filepath.Join(w, "Installer"),
			filepath.Join(w, "servicing"),
		)
	}
	for _, name := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "PROGRAMDATA"} {
		if p, ok := r.Lookup(name); ok {
			paths = append(paths, p)
		}
	}
	if home, ok := r.UserProfile(); ok {
		paths = append(paths, home, filepath.Dir(home))
	}
	for _, name := range []string{"LOCALAPPDATA", "APPDATA"} {
		if p, ok := r.Lookup(name); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// IsVolumeRoot reports whether path is the root of a drive or filesystem.
func IsVolumeRoot(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) == clean
}
