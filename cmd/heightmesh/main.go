// heightmesh is a CLI utility for inspecting heightmaps and exporting meshes.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/heightview/internal/engine/terrain"
	"github.com/Faultbox/heightview/internal/export"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "export", "x":
		err = cmdExport(args)
	case "box":
		err = cmdBox(args)
	case "generate", "gen":
		err = cmdGenerate(args)
	case "inspect":
		err = cmdInspect(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heightmesh - heightmap to mesh utility

Usage:
  heightmesh <command> [options]

Commands:
  info <image>                            Show heightmap statistics
  export [-mapping m] [-o out] <image>    Build the terrain mesh and save it as glTF
  box [-o out]                            Save the cube mesh as glTF
  generate [-seed n] [-size WxH] [-o out] Write a Perlin noise heightmap PNG
  inspect <file.glb|file.gltf>            Show the triangle mesh in a glTF file

Output format follows the extension: .glb is binary, anything else glTF JSON.

Examples:
  heightmesh info hills.png
  heightmesh export -mapping legacy -o hills.glb hills.png
  heightmesh generate -seed 7 -size 256x256 -o hills.png
  heightmesh inspect hills.glb`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: heightmesh info <image>")
	}

	hm, err := terrain.LoadFile(args[0])
	if err != nil {
		return err
	}

	lo, hi, sum := float32(1), float32(0), float64(0)
	for _, s := range hm.Samples {
		lo = min(lo, s)
		hi = max(hi, s)
		sum += float64(s)
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Size:      %d x %d (%d samples)\n", hm.Width, hm.Height, len(hm.Samples))
	fmt.Printf("Heights:   min %.4f  max %.4f  mean %.4f\n", lo, hi, sum/float64(len(hm.Samples)))
	fmt.Printf("Triangles: %d\n", 2*hm.Width*hm.Height)

	for _, m := range []terrain.Mapping{terrain.MappingCentered, terrain.MappingLegacy} {
		mesh, err := terrain.BuildMesh(hm, m)
		if err != nil {
			return err
		}
		b := mesh.Bounds()
		fmt.Printf("Bounds (%s): %v .. %v\n", m, b.Min, b.Max)
	}
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	mappingName := fs.String("mapping", "centered", "Mapping: centered or legacy")
	output := fs.String("o", "", "Output file (default: <image>.glb)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: heightmesh export [-mapping m] [-o out] <image>")
	}
	input := fs.Arg(0)

	mapping, err := terrain.ParseMapping(*mappingName)
	if err != nil {
		return err
	}

	hm, err := terrain.LoadFile(input)
	if err != nil {
		return err
	}
	mesh, err := terrain.BuildMesh(hm, mapping)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".glb"
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if err := export.WriteFile(out, mesh, name); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d triangles (%dx%d, %s mapping)\n", out, mesh.TriangleCount(), hm.Width, hm.Height, mapping)
	return nil
}

func cmdBox(args []string) error {
	fs := flag.NewFlagSet("box", flag.ExitOnError)
	output := fs.String("o", "cube.glb", "Output file")
	fs.Parse(args)

	mesh := terrain.BuildBox()
	if err := export.WriteFile(*output, mesh, "cube"); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d triangles\n", *output, mesh.TriangleCount())
	return nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "Noise seed")
	size := fs.String("size", "128x128", "Heightmap size as WxH")
	octaves := fs.Int("octaves", 4, "Noise octaves")
	frequency := fs.Float64("frequency", 3, "Noise periods across the map")
	output := fs.String("o", "heightmap.png", "Output PNG file")
	fs.Parse(args)

	var width, height int
	if _, err := fmt.Sscanf(*size, "%dx%d", &width, &height); err != nil {
		return fmt.Errorf("invalid size %q: %w", *size, err)
	}

	params := terrain.DefaultNoiseParams(*seed)
	params.Octaves = int32(*octaves)
	params.Frequency = *frequency

	hm, err := terrain.Generate(width, height, params)
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := png.Encode(f, hm.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %dx%d (seed %d)\n", *output, width, height, *seed)
	return nil
}

func cmdInspect(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: heightmesh inspect <file>")
	}

	mesh, err := export.ReadFile(args[0])
	if err != nil {
		return err
	}
	b := mesh.Bounds()
	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds:    %v .. %v\n", b.Min, b.Max)
	return nil
}
