// Command rsrcdump enumerates every resource in a Classic Mac OS
// resource-bearing container and writes each one to disk under
// type/id[_name].bin, decompressing it first when possible (spec
// §5's "dump resources" CLI surface).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/compress"
	"rsrcdasm.dev/go/rsrc/container"
)

func main() {
	os.Exit(run())
}

func run() int {
	outDir := flag.String("out", "", "directory to write decoded resources into (default: <input>.rsrc)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-out dir] input-file\n", os.Args[0])
		flag.PrintDefaults()
		return 1
	}
	inputPath := flag.Arg(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", inputPath, err)
		return 1
	}

	set, err := container.ParseAny(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing %s: %v\n", inputPath, err)
		return 1
	}

	dir := *outDir
	if dir == "" {
		dir = inputPath + ".rsrc"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", dir, err)
		return 1
	}

	dispatcher := compress.NewDispatcher()
	anyFailed := false
	for _, tid := range set.All() {
		res, err := set.Get(tid.Type, tid.ID, dispatcher, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error decompressing %s %d: %v\n", tid.Type, tid.ID, err)
			anyFailed = true
			continue
		}
		if err := writeResource(dir, res); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s %d: %v\n", tid.Type, tid.ID, err)
			anyFailed = true
			continue
		}
	}

	fmt.Printf("dumped %d resources from %s to %s\n", set.Len(), inputPath, dir)
	if anyFailed {
		return 2
	}
	return 0
}

func writeResource(dir string, res *rsrc.Resource) error {
	typeDir := filepath.Join(dir, res.Type.String())
	if err := os.MkdirAll(typeDir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%d", res.ID)
	if res.Name != "" {
		name += "_" + sanitizeFilename(res.Name)
	}
	path := filepath.Join(typeDir, name+".bin")
	return os.WriteFile(path, res.Data, 0o644)
}

// sanitizeFilename replaces path-hostile characters in a resource name
// so it can be used verbatim as part of a filename.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '/' || r == '\\' || r == 0 {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
