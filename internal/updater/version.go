package updater

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// VersionFilename stores the installed version next to the data files.
const VersionFilename = "version.txt"

// DefaultVersion is reported before any release has been installed.
const DefaultVersion = "0.0.0 (dev)"

// ReadVersion reads the installed version, defaulting for fresh installs.
func ReadVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultVersion
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return DefaultVersion
	}
	return v
}

// WriteVersion persists the installed version.
func WriteVersion(path, version string) error {
	if err := os.WriteFile(path, []byte(version+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing version file: %w", err)
	}
	return nil
}

// IsNewer reports whether remote is a strictly newer semantic version than
// local. Leading "v" and trailing annotations like "(dev)" are ignored.
// Unparseable versions compare as not newer.
func IsNewer(remote, local string) bool {
	r, err := parseSemver(remote)
	if err != nil {
		return false
	}
	l, err := parseSemver(local)
	if err != nil {
		// Local is unreadable; any valid remote wins.
		return true
	}
	for i := 0; i < 3; i++ {
		if r[i] != l[i] {
			return r[i] > l[i]
		}
	}
	return false
}

func parseSemver(v string) ([3]int, error) {
	var out [3]int

	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, " -+"); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return out, errors.New("not a MAJOR.MINOR.PATCH version")
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return out, fmt.Errorf("bad version component %q", p)
		}
		out[i] = n
	}
	return out, nil
}
