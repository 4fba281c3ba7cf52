package wood

import _ "embed"

// SampleTree is a small application dependency tree used for demos and
// smoke tests.
//
//go:embed sample.json
var SampleTree []byte
