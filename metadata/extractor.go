package metadata

import "log"

// Backend is one extraction strategy. A backend may fail outright or return
// a partially populated Fields; both are normal.
type Backend interface {
	Name() string
	Extract(path string) (*Fields, error)
}

// Extractor runs an ordered list of backends and merges their results with
// a "first non-empty wins" reducer: a field set by an earlier backend is
// never overwritten by a later one.
type Extractor struct {
	backends []Backend
}

// NewExtractor builds an extractor over the given backends, in priority
// order. With no arguments it uses the default pair: the structured EXIF
// parser, gap-filled by the runtime image reader.
func NewExtractor(backends ...Backend) *Extractor {
	if len(backends) == 0 {
		backends = []Backend{ExifBackend{}, BasicBackend{}}
	}
	return &Extractor{backends: backends}
}

// Extract never fails: unreadable or unsupported files log a warning per
// backend and yield whatever the remaining backends produced, possibly an
// empty Fields.
func (e *Extractor) Extract(path string) *Fields {
	merged := &Fields{}
	for _, backend := range e.backends {
		fields, err := backend.Extract(path)
		if err != nil {
			log.Printf("metadata: backend %s skipped %s: %v", backend.Name(), path, err)
			continue
		}
		merged.fill(fields)
	}
	return merged
}
