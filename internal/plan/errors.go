package plan

import "errors"

// ErrUnplannable marks geometry the planner cannot turn into cuts, such as
// a self-intersecting path or an offset that collapses to nothing. A plan
// that hits it is abandoned as a whole.
var ErrUnplannable = errors.New("unplannable geometry")
