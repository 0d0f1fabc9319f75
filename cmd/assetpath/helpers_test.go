package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Default</title>
<link rel="stylesheet" href="../static/site.css">
</head>
<body>
<main data-slot="content"></main>
<img src="site:static/logo.svg" alt="logo">
</body>
</html>`

const testConfig = `site:
  generated: "2024-01-02"
  stylesheets:
    - assetpath:static/reset.css
mounts:
  - name: site
    dir: ./site
pages:
  - output: index.html
    template: site:templates/base.html
    content: site:content/index.md
    title: Home
  - output: blog/index.html
    template: site:templates/base.html
    content: ../content/post.md
assets:
  rules:
    img: [src]
`

// fixedNow is the clock of every test environment.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// testEnv returns an environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFiles writes files relative to root, creating parents.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// writeTestSite creates a site with two pages and returns the config path.
// Extra files override the defaults.
func writeTestSite(t *testing.T, extra map[string]string) (cfgPath, root string) {
	t.Helper()

	root = t.TempDir()
	files := map[string]string{
		"assetpath.yaml":           testConfig,
		"site/templates/base.html": testTemplate,
		"site/content/index.md":    "# Welcome\n\nHello.\n",
		"site/content/post.md":     "# First post\n",
		"site/static/site.css":     "body { margin: 0; }",
		"site/static/logo.svg":     "<svg></svg>",
	}
	for k, v := range extra {
		files[k] = v
	}
	writeFiles(t, root, files)

	return filepath.Join(root, "assetpath.yaml"), root
}

// readFile reads a file relative to root.
func readFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
