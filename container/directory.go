package container

import (
	"io/fs"
	"path"
	"strconv"
	"strings"

	"rsrcdasm.dev/go/rsrc"
)

// unescapeTypeName reverses the "%XX" escaping applied to non-ASCII
// bytes of a resource type when it's used as a directory name (spec
// §4.2's "Directory-on-disk").
func unescapeTypeName(name string) (rsrc.Type, bool) {
	var out []byte
	for i := 0; i < len(name); i++ {
		if name[i] == '%' && i+2 < len(name) {
			v, err := strconv.ParseUint(name[i+1:i+3], 16, 8)
			if err != nil {
				return 0, false
			}
			out = append(out, byte(v))
			i += 2
			continue
		}
		out = append(out, name[i])
	}
	if len(out) != 4 {
		return 0, false
	}
	return rsrc.MakeType(out[0], out[1], out[2], out[3]), true
}

// TryParseDirectory walks a directory whose first-level children are
// directories named after resource types (with %XX escaping for
// non-ASCII bytes); each contains files named ID.bin or ID_Name.bin
// (spec §4.2).
func TryParseDirectory(fsys fs.FS, root string) (*rsrc.ResourceSet, error) {
	set := rsrc.NewResourceSet()

	typeDirs, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, formatErr("Directory", 0, "cannot read root directory", err)
	}
	for _, typeDir := range typeDirs {
		if !typeDir.IsDir() {
			continue
		}
		resType, ok := unescapeTypeName(typeDir.Name())
		if !ok {
			continue
		}
		typeDirPath := path.Join(root, typeDir.Name())
		files, err := fs.ReadDir(fsys, typeDirPath)
		if err != nil {
			return nil, formatErr("Directory", 0, "cannot read type directory", err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			base := strings.TrimSuffix(file.Name(), ".bin")
			if base == file.Name() {
				continue // not a .bin file
			}
			idPart := base
			name := ""
			if idx := strings.IndexByte(base, '_'); idx >= 0 {
				idPart = base[:idx]
				name = base[idx+1:]
			}
			id, err := strconv.ParseInt(idPart, 10, 16)
			if err != nil {
				continue
			}
			body, err := fs.ReadFile(fsys, path.Join(typeDirPath, file.Name()))
			if err != nil {
				return nil, formatErr("Directory", 0, "cannot read resource file", err)
			}
			set.Add(rsrc.Resource{
				Type: resType,
				ID:   rsrc.ID(id),
				Name: name,
				Data: body,
			})
		}
	}

	return set, nil
}
