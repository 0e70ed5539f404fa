// Command prismac compiles a datamodel and prints the derived storage
// schema or API surface. It is a development tool around the compiler; it
// never talks to a database or a server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/welevelacademy/prisma/compiler"
	"github.com/welevelacademy/prisma/compiler/api"
	"github.com/welevelacademy/prisma/config"
	"github.com/welevelacademy/prisma/sdl"
)

var (
	serviceFile string
	format      string
	watch       bool
)

var rootCmd = &cobra.Command{
	Use:   "prismac [datamodel files]",
	Short: "Compile a datamodel into its storage schema and API surface",
	Long: `prismac parses one or more .prisma datamodel files, validates them, and
prints the relational schema and operation catalog they entail. Sources
come either from file arguments or from a prisma.yml-style service file.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&serviceFile, "service", "s", "", "Service configuration file listing the datamodel sources")
	rootCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or graphql")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile whenever a source file changes")
}

func run(cmd *cobra.Command, args []string) error {
	if serviceFile == "" && len(args) == 0 {
		return fmt.Errorf("either --service or datamodel file arguments are required")
	}
	if err := compile(args); err != nil && !watch {
		return err
	}
	if !watch {
		return nil
	}
	return watchLoop(args)
}

func sources(args []string) ([]sdl.Source, error) {
	if serviceFile != "" {
		svc, err := config.Load(serviceFile)
		if err != nil {
			return nil, err
		}
		return svc.Sources()
	}
	srcs := make([]sdl.Source, 0, len(args))
	for _, name := range args {
		text, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, sdl.Source{Name: name, Text: string(text)})
	}
	return srcs, nil
}

func compile(args []string) error {
	srcs, err := sources(args)
	if err != nil {
		return err
	}
	result, err := compiler.Compile(srcs...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}
	switch format {
	case "graphql":
		fmt.Print(api.Render(result.Graph, result.Catalog))
	default:
		out, err := result.Schema.MarshalText()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

// watchLoop recompiles on every write to a source file and keeps running
// until interrupted. Compilation failures are printed, not fatal.
func watchLoop(args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	srcs, err := sources(args)
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	for _, src := range srcs {
		dirs[filepath.Dir(src.Name)] = struct{}{}
	}
	if serviceFile != "" {
		dirs[filepath.Dir(serviceFile)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	fmt.Fprintln(os.Stderr, "watching for changes...")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := compile(args); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
