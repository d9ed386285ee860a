package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/internal/filetest"
	"github.com/mna/bintmpl/internal/maincmd"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected run test results with actual results.")

// TestRun drives RunTemplate against every fixture in testdata/in, each
// paired with a same-named target buffer in testdata/targets, and diffs
// the recorded host-call transcript (set_data_type/set_comment/print)
// against the golden file in testdata/out.
func TestRun(t *testing.T) {
	ctx := context.Background()
	srcDir, targetDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "targets"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".bt") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			name := strings.TrimSuffix(fi.Name(), filepath.Ext(fi.Name()))
			target := filepath.Join(targetDir, name+".bin")

			// error is ignored, we just want it printed to ebuf like the CLI does
			_ = maincmd.RunTemplate(ctx, stdio, filepath.Join(srcDir, fi.Name()), target)

			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateRunTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateRunTests)
		})
	}
}
