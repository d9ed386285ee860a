package interp

import (
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// flowSignal is the distinguished statement-evaluation result §4.4.3/§9
// describe for propagating return/break/continue without native exception
// machinery ("prefer an explicit sentinel result type so performance does
// not depend on exception-handler cost").
type flowSignal struct {
	kind  FlowMask // exactly one of FlowReturn, FlowBreak, FlowContinue
	value types.Value
	pos   token.Pos
}
