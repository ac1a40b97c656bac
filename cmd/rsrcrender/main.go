// Command rsrcrender selects a decoder by resource type tag and saves
// its output as PNG. Only the rasterized image types registered in
// renderers are handled; it writes no TMPL or other text dumps (spec
// §5's "render" CLI surface).
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"rsrcdasm.dev/go/rsrc"
	"rsrcdasm.dev/go/rsrc/compress"
	"rsrcdasm.dev/go/rsrc/container"
	decimage "rsrcdasm.dev/go/rsrc/image"
	"rsrcdasm.dev/go/rsrc/quickdraw"
)

func main() {
	os.Exit(run())
}

func run() int {
	typeFlag := flag.String("type", "", "4-character resource type to render (default: every renderable type)")
	idFlag := flag.Int("id", 0, "resource id to render (required with -type)")
	outDir := flag.String("out", "", "directory to write rendered images into (default: <input>.render)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-type TYPE -id ID] [-out dir] input-file\n", os.Args[0])
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
		dir = inputPath + ".render"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", dir, err)
		return 1
	}

	var targets []rsrc.TypeID
	if *typeFlag != "" {
		targets = append(targets, rsrc.TypeID{Type: rsrc.ParseType(*typeFlag), ID: rsrc.ID(*idFlag)})
	} else {
		for _, tid := range set.All() {
			if _, ok := renderers[tid.Type]; ok {
				targets = append(targets, tid)
			}
		}
	}

	dispatcher := compress.NewDispatcher()
	anyFailed := false
	rendered := 0
	for _, tid := range targets {
		render, ok := renderers[tid.Type]
		if !ok {
			fmt.Fprintf(os.Stderr, "no renderer registered for type %s\n", tid.Type)
			anyFailed = true
			continue
		}
		res, err := set.Get(tid.Type, tid.ID, dispatcher, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error decompressing %s %d: %v\n", tid.Type, tid.ID, err)
			anyFailed = true
			continue
		}
		img, err := render(res, set, dispatcher)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error rendering %s %d: %v\n", tid.Type, tid.ID, err)
			anyFailed = true
			continue
		}
		if img == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", tid.Type, tid.ID))
		if err := writePNG(path, img); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
			anyFailed = true
			continue
		}
		rendered++
	}

	fmt.Printf("rendered %d of %d requested resources from %s to %s\n", rendered, len(targets), inputPath, dir)
	if anyFailed {
		return 2
	}
	return 0
}

func writePNG(path string, img *decimage.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img.ToStdImage())
}

// renderFunc decodes one resource into an Image ready for PNG encoding,
// consulting set for any cross-resource dependencies (e.g. a palette).
// A nil Image with a nil error means "nothing to render" (e.g. a PICT
// whose content went to the embedded-image side channel).
type renderFunc func(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error)

var renderers = map[rsrc.Type]renderFunc{
	rsrc.TypePICT: renderPICT,
	rsrc.TypeCicn: renderCicn,
	rsrc.TypeCrsr: renderCrsr,
	rsrc.TypePpat: renderPpat,
	rsrc.TypePat:  renderPAT,
	rsrc.TypeIcon: renderMono("ICON", false),
	rsrc.TypeIcnN: renderMono("ICN#", true),
	rsrc.TypeIcl4: renderIndexed(32, 32, 4),
	rsrc.TypeIcl8: renderIndexed(32, 32, 8),
	rsrc.TypeIcs4: renderIndexed(16, 16, 4),
	rsrc.TypeIcs8: renderIndexed(16, 16, 8),
}

func renderPICT(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
	result, err := decimage.DecodePICT(res.Data)
	if err != nil {
		return nil, err
	}
	return result.Image, nil
}

func renderCicn(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
	ci, err := decimage.DecodeCicn(res.Data)
	if err != nil {
		return nil, err
	}
	return ci.Image, nil
}

func renderCrsr(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
	cc, err := decimage.DecodeCrsr(res.Data)
	if err != nil {
		return nil, err
	}
	return cc.Image, nil
}

func renderPpat(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
	pat, err := decimage.DecodePpat(res.Data)
	if err != nil {
		return nil, err
	}
	if pat.Color != nil {
		return pat.Color, nil
	}
	return pat.Monochrome, nil
}

func renderPAT(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
	return decimage.DecodePAT(res.Data)
}

// renderMono returns a renderFunc for a fixed-size 1-bit icon family.
func renderMono(_ string, hasMask bool) renderFunc {
	return func(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
		bitmap, _, err := decimage.DecodeMono1Bit(res.Data, 32, 32, hasMask)
		if err != nil {
			return nil, err
		}
		return bitmap, nil
	}
}

// renderIndexed returns a renderFunc for a fixed-size color-indexed
// icon family, using the classic Mac OS default system palette for the
// declared bit depth since these families carry no inline clut.
func renderIndexed(width, height, bitsPerPixel int) renderFunc {
	pal := quickdraw.DefaultSystemPalette8
	if bitsPerPixel == 4 {
		pal = quickdraw.DefaultSystemPalette4
	}
	return func(res *rsrc.Resource, set *rsrc.ResourceSet, dec *compress.Dispatcher) (*decimage.Image, error) {
		return decimage.DecodeIndexedIcon(res.Data, width, height, bitsPerPixel, pal, nil)
	}
}
