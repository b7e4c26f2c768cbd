package snippet

import "strings"

// RootSigil marks a path as relative to the configured root directory
const RootSigil = "@"

// PathInfo holds a resolved target path and its components
type PathInfo struct {
	Resolved string // Absolute path after root substitution
	Dir      string // Everything before the last separator
	Base     string // File name without extension
	Ext      string // Text after the last dot, empty if none
}

// ResolvePath substitutes a leading root sigil with root and splits the result
func ResolvePath(raw, root string) PathInfo {
	resolved := raw
	if strings.HasPrefix(resolved, RootSigil) {
		resolved = root + resolved[len(RootSigil):]
	}
	resolved = strings.TrimSpace(resolved)

	info := PathInfo{Resolved: resolved}

	name := resolved
	if idx := strings.LastIndex(resolved, "/"); idx != -1 {
		info.Dir = resolved[:idx]
		name = resolved[idx+1:]
	}

	if idx := strings.LastIndex(name, "."); idx != -1 {
		info.Base = name[:idx]
		info.Ext = name[idx+1:]
	} else {
		info.Base = name
	}

	return info
}
