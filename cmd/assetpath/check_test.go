package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-assetpath/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestRunCheck - Validation without output
// ---------------------------------------------------------------------------

func TestRunCheck(t *testing.T) {
	t.Parallel()

	cfgPath, root := writeTestSite(t, nil)
	env, stdout, stderr := testEnv()

	code := run(context.Background(), []string{"assetpath", "check", "-c", cfgPath}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "2 pages OK, 3 assets referenced") {
		t.Errorf("stdout missing summary:\n%s", out)
	}
	if !strings.Contains(out, "  site/static/logo.svg") {
		t.Errorf("stdout missing asset list:\n%s", out)
	}
	if fileutil.DirExists(filepath.Join(root, "public")) {
		t.Error("check wrote output")
	}
}

func TestRunCheck_JSON(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeTestSite(t, nil)
	env, stdout, stderr := testEnv()

	code := run(context.Background(), []string{"assetpath", "check", "-c", cfgPath, "--json"}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}

	var got checkResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	want := checkResult{
		Status: "ok",
		Pages:  2,
		Assets: []string{"assetpath/static/reset.css", "site/static/logo.svg", "site/static/site.css"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("check result mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCheck_Failure(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeTestSite(t, map[string]string{
		"site/templates/base.html": `<html><head><script src="nope:app.js"></script></head><body><main data-slot="content"></main></body></html>`,
	})
	env, stdout, stderr := testEnv()

	code := run(context.Background(), []string{"assetpath", "check", "-c", cfgPath, "--json"}, env)
	if code != ExitAsset {
		t.Fatalf("run() = %d, want %d\nstderr: %s", code, ExitAsset, stderr.String())
	}

	var got checkResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if got.Status != "error" {
		t.Errorf("Status = %q, want %q", got.Status, "error")
	}
	for _, want := range []string{"nope", "mounted packages: assetpath, site"} {
		if !strings.Contains(got.Error, want) {
			t.Errorf("Error %q missing %q", got.Error, want)
		}
	}
}
