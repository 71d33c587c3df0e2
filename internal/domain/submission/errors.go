package submission

import "errors"

// ErrUnsupportedFormat indicates an upload whose extension has no extractor.
var ErrUnsupportedFormat = errors.New("Unsupported file type")
