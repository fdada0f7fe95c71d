package docs

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kinds of fenced blocks run by TestCodeBlocks.
const (
	bashSetup    = "bash setup"    // starts a scenario in a fresh folder.
	bashRun      = "bash run"      // its output is kept for the next console check.
	consoleCheck = "console check" // expected output of the last bash run.
	bashCheck    = "bash check"    // must exit successfully.
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every topic is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetTopicStar(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, heading := range []string{"# Financial years", "# Cross-check", "# Winners"} {
		if !strings.Contains(all, heading) {
			t.Errorf("GetTopic(*) is missing %q", heading)
		}
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope) expected an error, but got none")
	}
}

// TestCodeBlocks runs the scenarios written in the documentation against a fresh build.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	var bin string
	for _, file := range files {
		blocks := parseMarkdown(t, file)
		if len(blocks) == 0 {
			continue
		}
		if bin == "" {
			bin = buildHistrates(t, t.TempDir())
		}
		t.Run(file, func(t *testing.T) {
			path := fmt.Sprintf("PATH=%s%c%s", filepath.Dir(bin), os.PathListSeparator, os.Getenv("PATH"))
			r := blockRunner{env: append(os.Environ(), path), dir: t.TempDir()}
			for _, b := range blocks {
				r.run(t, b)
			}
		})
	}
}

// block is a fenced code block of a markdown file.
type block struct {
	kind    string
	content string
	file    string
	line    int
}

// buildHistrates builds the histrates executable in tmp and returns its path.
func buildHistrates(t *testing.T, tmp string) string {
	t.Helper()
	output := filepath.Join(tmp, "histrates")
	build := exec.Command("go", "build", "-o", output, "../histrates/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build histrates command: %v\n%s", err, out)
	}
	return output
}

// parseMarkdown returns the runnable blocks of a markdown file, in order.
func parseMarkdown(t *testing.T, file string) []*block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	var blocks []*block
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(content))
		switch kind {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(content))
		}
		blocks = append(blocks, &block{
			kind:    kind,
			content: b.String(),
			file:    file,
			line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// blockRunner runs the blocks of one file, in a shared scenario folder.
type blockRunner struct {
	env  []string
	dir  string
	last string // output of the last bash run.
}

func (r *blockRunner) run(t *testing.T, b *block) {
	t.Helper()
	if b.kind == consoleCheck {
		want, got := strings.TrimSpace(b.content), strings.TrimSpace(r.last)
		if want != got {
			t.Errorf("%s:%d: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n", b.file, b.line, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		r.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = r.dir
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		r.last = string(output)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s:%d: %s failed: %v with output:\n%s", b.file, b.line, b.kind, err, output)
		return
	}
	t.Fatalf("%s:%d: %s failed: %v with output:\n%s", b.file, b.line, b.kind, err, output)
}
