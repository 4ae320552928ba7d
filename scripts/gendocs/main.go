// Package main generates markdown reference documentation for leapcube from
// its command tree, configuration fields and advisory rule registry.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/reference
//	go run ./scripts/gendocs -gen=rules -outdir=docs/advisories
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, rules, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generator writes one documentation set into a directory.
type generator struct {
	name       string
	defaultDir string
	run        func(outDir string) error
}

var generators = []generator{
	{name: "cli", defaultDir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	{name: "config", defaultDir: filepath.Join("docs", "reference"), run: generateConfigDocs},
	{name: "rules", defaultDir: filepath.Join("docs", "advisories"), run: generateRuleDocs},
}

func main() {
	flag.Parse()

	var selected []generator
	for _, g := range generators {
		if *genFlag == "all" || *genFlag == g.name {
			selected = append(selected, g)
		}
	}
	if len(selected) == 0 {
		log.Fatalf("unknown -gen value: %s (use: cli, config, rules, all)", *genFlag)
	}
	if *outDirFlag != "" && len(selected) > 1 {
		log.Fatalf("-outdir requires a single -gen value")
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	for _, g := range selected {
		outDir := *outDirFlag
		if outDir == "" {
			outDir = filepath.Join(projectRoot, g.defaultDir)
		}
		if err := g.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", g.name, err)
		}
	}

	log.Println("Done!")
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
