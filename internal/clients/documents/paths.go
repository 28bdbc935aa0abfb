package documents

import (
	"path"
	"strings"
)

const jsonExt = ".json"

func joinPath(dir, name string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func hasJSONExt(candidates ...string) bool {
	for _, c := range candidates {
		if c != "" {
			return strings.EqualFold(path.Ext(c), jsonExt)
		}
	}
	return false
}

// idFromName strips the .json extension from a file name
func idFromName(name string) string {
	base := path.Base(name)
	if strings.EqualFold(path.Ext(base), jsonExt) {
		return base[:len(base)-len(jsonExt)]
	}
	return base
}

// entryPath returns the repository path of an entry listed under dir
func entryPath(dir string, e DirectoryEntry) string {
	if e.Path != "" {
		return e.Path
	}
	if e.Name != "" {
		return joinPath(dir, e.Name)
	}
	return ""
}
