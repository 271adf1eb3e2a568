package archive

import "fmt"

// ValidationError reports a record that failed structural checks during
// decode: wrong version, truncated sections, or a checksum mismatch.
type ValidationError struct {
	Schema string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("archive: invalid %s record: %s", e.Schema, e.Reason)
}
