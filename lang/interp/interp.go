package interp

import (
	"context"

	"github.com/mna/bintmpl/host"
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/preprocess"
	"github.com/mna/bintmpl/lang/token"
)

// Run evaluates chunk's top-level block against a fresh execution
// context bound to h, returning once the template runs to completion,
// hits an error, or is aborted via cancellation (ctx) or a host Yield
// error. lt is the line table the preprocessor produced for chunk's
// source, used to rebase every reported position back through its
// #include origin; pass nil if chunk's source was never preprocessed.
func Run(ctx context.Context, files *token.FileSet, lt *preprocess.LineTable, chunk *ast.Chunk, h host.Host) error {
	ec := NewExecutionContext(ctx, files, lt, h)
	defer ec.Close()
	return ec.Run(chunk)
}

// Run is the same entrypoint as the package-level Run, for callers that
// already hold an ExecutionContext (e.g. a REPL-style embedder running
// several chunks against one context and cursor).
func (c *ExecutionContext) Run(chunk *ast.Chunk) error {
	base := newFrame(FrameBase)
	base.Blocks = FlowReturn | FlowBreak | FlowContinue
	sig, err := c.runScopedBlock(base, chunk.Block)
	if err != nil {
		return err
	}
	if sig != nil {
		// runScopedBlock already converts any Blocks-masked kind into its
		// taxonomy error; reaching here with a signal would mean the base
		// frame's Blocks mask missed a kind.
		return &InternalError{Pos: c.position(sig.pos), Msg: "unhandled flow signal escaped template scope"}
	}
	return nil
}
