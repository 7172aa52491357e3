// Package openscad renders OpenSCAD models to STL with the openscad binary
// and finds the files a model depends on.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
	// Binary is the executable to run, "openscad" unless set
	Binary string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		Binary:  "openscad",
	}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			msg.WriteString("\nstderr: ")
			msg.WriteString(strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			msg.WriteString("\nstdout: ")
			msg.WriteString(strings.TrimSpace(stdout.String()))
		}
		return errors.New(msg.String())
	}
	return nil
}

// ResolveDependencies returns scadFile and every file it pulls in through
// use or include, as absolute paths. Cycles are followed once.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range fileDeps {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, re := range []*regexp.Regexp{useRegex, includeRegex} {
			if m := re.FindStringSubmatch(line); len(m) > 1 {
				deps = append(deps, r.resolveDepPath(m[1], dir))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath prefers the including file's directory and falls back to
// the work directory for library paths
func (r *Renderer) resolveDepPath(dep, dir string) string {
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return filepath.Clean(filepath.Join(dir, dep))
	}
	local := filepath.Join(dir, dep)
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}
