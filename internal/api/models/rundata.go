package models

import "encoding/json"

// RunData is the output produced by the latest execution of a workflow,
// keyed by node name. Each entry is the raw JSON the node emitted, usually
// an array of items.
type RunData map[string]json.RawMessage
