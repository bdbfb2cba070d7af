// SPDX-License-Identifier: MIT

// Package e2e provides end-to-end tests for the gdtsgen CLI.
package e2e

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

var (
	binary string                                              // path to built gdtsgen binary
	update = flag.Bool("update", false, "update golden files")
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Build the gdtsgen binary to a temp location.
	tmpDir, err := os.MkdirTemp("", "gdtsgen-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binary = filepath.Join(tmpDir, "gdtsgen")
	if err := buildBinary(binary); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build binary: %v\n", err)
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// buildBinary builds the gdtsgen binary to the specified path.
func buildBinary(outputPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "build", "-o", outputPath, "./cmd/gdtsgen")

	// Set working directory to the module root.
	moduleRoot, err := findModuleRoot()
	if err != nil {
		return fmt.Errorf("find module root: %w", err)
	}
	cmd.Dir = moduleRoot

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w: %s", err, stderr.String())
	}

	return nil
}

// findModuleRoot finds the root of the Go module by looking for go.mod.
func findModuleRoot() (string, error) {
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
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

func TestE2E(t *testing.T) {
	testdataDir := filepath.Join("testdata")

	pattern := filepath.Join(testdataDir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", testdataDir)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			runTestCase(t, file, name)
		})
	}
}

// runTestCase executes a single e2e test case.
//
// The snapshot is written to a temp directory, existing/* files are seeded
// into the output directory, and the CLI runs with --input and --output.
// The result is every file left in the output directory, plus "stdout"
// when the command printed anything.
func runTestCase(t *testing.T, file, name string) {
	t.Helper()

	ar, err := txtar.ParseFile(file)
	if err != nil {
		t.Fatalf("parse txtar: %v", err)
	}

	tc, err := parseE2ECase(name, ar)
	if err != nil {
		t.Fatalf("parse case: %v", err)
	}

	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	inputPath := filepath.Join(tmpDir, tc.inputName)
	if err := os.WriteFile(inputPath, tc.input, 0o644); err != nil {
		t.Fatalf("write %s: %v", tc.inputName, err)
	}
	for rel, data := range tc.existing {
		path := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("seed %s: %v", rel, err)
		}
	}

	args := []string{"--input", inputPath, "--output", outDir}
	args = append(args, tc.flags...)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = tmpDir
	cmd.Env = cleanEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Logf("command: %s %s", binary, strings.Join(args, " "))
		t.Logf("stderr: %s", stderr.String())
		t.Fatalf("command failed: %v", err)
	}

	got, err := readOutput(outDir)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if stdout.Len() > 0 {
		got["stdout"] = stdout.Bytes()
	}

	if *update {
		updated := updateE2EArchive(ar, got)
		if err := os.WriteFile(file, txtar.Format(updated), 0o644); err != nil {
			t.Fatalf("write updated file: %v", err)
		}
		t.Logf("updated %s", file)
		return
	}

	compareOutput(t, tc.want, got)
}

// cleanEnv drops GDTSGEN_* overrides from the caller's environment.
func cleanEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GDTSGEN_") {
			env = append(env, e)
		}
	}
	return env
}

// readOutput returns the files in dir keyed by base name. A missing
// directory yields an empty map.
func readOutput(dir string) (map[string][]byte, error) {
	got := make(map[string][]byte)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return got, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		got[e.Name()] = data
	}
	return got, nil
}

// e2eCase represents a parsed e2e test case.
type e2eCase struct {
	name        string
	description string
	flags       []string
	inputName   string
	input       []byte
	existing    map[string][]byte
	want        map[string][]byte
}

// parseE2ECase parses a txtar archive into an e2e test case.
func parseE2ECase(name string, ar *txtar.Archive) (*e2eCase, error) {
	c := &e2eCase{
		name:        name,
		description: string(ar.Comment),
		existing:    make(map[string][]byte),
		want:        make(map[string][]byte),
	}

	// Parse flags from description.
	c.parseFlags()

	// Process files.
	for _, f := range ar.Files {
		switch {
		case f.Name == "input.json" || f.Name == "input.yaml":
			c.inputName = f.Name
			c.input = f.Data
		case strings.HasPrefix(f.Name, "existing/"):
			c.existing[strings.TrimPrefix(f.Name, "existing/")] = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			c.want[strings.TrimPrefix(f.Name, "want/")] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected input.json, input.yaml, existing/* or want/*)", f.Name)
		}
	}

	if c.input == nil {
		return nil, fmt.Errorf("missing input.json in archive")
	}

	if len(c.want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}

	return c, nil
}

// parseFlags extracts flags from "Flags: ..." line in the description.
// Flags are space-separated (not comma-separated) to match CLI conventions.
func (c *e2eCase) parseFlags() {
	for line := range strings.SplitSeq(c.description, "\n") {
		line = strings.TrimSpace(line)
		if flagStr, ok := strings.CutPrefix(line, "Flags:"); ok {
			// Split by whitespace to handle flags like "-c Node,Node2D"
			c.flags = strings.Fields(flagStr)
			break
		}
	}
}

// compareOutput compares expected and actual output.
func compareOutput(t *testing.T, want, got map[string][]byte) {
	t.Helper()

	// Check for missing expected files.
	for wantFile := range want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output file: %q", wantFile)
		}
	}

	// Check for unexpected files.
	for gotFile := range got {
		if _, ok := want[gotFile]; !ok {
			t.Errorf("unexpected output file: %q", gotFile)
		}
	}

	// Compare contents.
	for wantFile, wantContent := range want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing.
		}

		if diff := cmp.Diff(normalizeOutput(wantContent), normalizeOutput(gotContent)); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
}

// normalizeOutput normalizes line endings and trailing newlines.
func normalizeOutput(content []byte) string {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}

// updateE2EArchive updates a txtar archive with new generated content.
func updateE2EArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	// Keep the input and existing/* files.
	for _, f := range ar.Files {
		if !strings.HasPrefix(f.Name, "want/") {
			result.Files = append(result.Files, f)
		}
	}

	// Add want/* files in sorted order.
	var wantFiles []string
	for name := range got {
		wantFiles = append(wantFiles, name)
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		// Ensure trailing newline.
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}
