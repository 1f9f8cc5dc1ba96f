package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	inkwell "github.com/grindlemire/go-inkwell"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [path...]",
	Short: "Render YAML tree documents once",
	Long: `Render lays out each YAML document and prints the result.

Paths may be files, directories (non-recursive) or a recursive pattern
ending in "/...". Static regions are printed above the dynamic output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectDocuments(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no .yaml documents found")
		}

		profile, err := inkwell.ParseProfile(cfg.Color, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, err := parseDocument(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rendered, err := renderDocument(doc, cfg.columns(), profile)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, rendered)
		}
		return nil
	},
}

func isDocument(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// collectDocuments expands paths into document files.
// Supports:
//   - Direct file paths: "card.yaml"
//   - Directory paths: "./docs"
//   - Recursive pattern: "./..."
func collectDocuments(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(path, "/...")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isDocument(p) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && isDocument(entry.Name()) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if isDocument(path) {
			files = append(files, path)
		}
	}

	return files, nil
}
