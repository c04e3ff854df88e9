// rbxdoc CLI - convert place/model documents between formats and inspect
// the reflection database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/rbxdoc/host"
	"github.com/chazu/rbxdoc/rbx"
	"github.com/chazu/rbxdoc/studio"
)

func main() {
	inPath := flag.String("in", "", "Input document path")
	outPath := flag.String("out", "", "Output document path")
	kind := flag.String("kind", "place", "Document kind: place or model")
	asXml := flag.Bool("xml", false, "Write the output in the xml format")
	listClasses := flag.Bool("classes", false, "List known classes and exit")
	studioPaths := flag.Bool("studio", false, "Print Studio install paths and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rbxdoc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Converts rbxdoc documents between the binary and xml formats.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rbxdoc -in world.rbxdoc -out world.xml -kind place -xml\n")
		fmt.Fprintf(os.Stderr, "  rbxdoc -in parts.xml -out parts.rbxdoc -kind model\n")
		fmt.Fprintf(os.Stderr, "  rbxdoc -classes\n")
	}
	flag.Parse()

	cfg, err := host.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rbxdoc: %v\n", err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.Log.Verbosity, nil)

	if *listClasses {
		db := rbx.GetDatabase()
		for _, name := range db.GetClassNames() {
			if class, ok := db.GetClass(name); ok && class.Service {
				fmt.Printf("%s (service)\n", name)
			} else {
				fmt.Println(name)
			}
		}
		return
	}

	if *studioPaths {
		if cfg.Studio.Root != "" {
			os.Setenv(studio.EnvStudioRoot, cfg.Studio.Root)
		}
		s, err := studio.Locate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "rbxdoc: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("application: %s\n", s.ApplicationPath())
		fmt.Printf("content:     %s\n", s.ContentPath())
		fmt.Printf("plugins:     %s\n", s.PluginsPath())
		fmt.Printf("builtin:     %s\n", s.BuiltinPluginsPath())
		return
	}

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := convert(cfg, *inPath, *outPath, *kind, *asXml); err != nil {
		fmt.Fprintf(os.Stderr, "rbxdoc: %v\n", err)
		os.Exit(1)
	}
}

func convert(cfg *host.Config, inPath, outPath, kind string, asXml bool) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	m := host.NewModule(cfg)
	defer m.Close()
	ctx := context.Background()

	var out []byte
	switch kind {
	case "place":
		root, err := m.DeserializePlace(ctx, data)
		if err != nil {
			return err
		}
		out, err = m.SerializePlace(ctx, root, asXml)
		if err != nil {
			return err
		}
	case "model":
		roots, err := m.DeserializeModel(ctx, data)
		if err != nil {
			return err
		}
		out, err = m.SerializeModel(ctx, roots, asXml)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown kind %q: expected place or model", kind)
	}

	return os.WriteFile(outPath, out, 0o644)
}
