package domain

// SourceDocument identifies a raw document pending ingestion. It is
// transient: the subsystem persists only the chunks derived from it.
type SourceDocument struct {
	// Name is the unique name/path of the document (e.g., the object key
	// in the bucket). It becomes the Source field of every derived chunk
	// and is the unit of dedup guarding.
	Name string

	// LocalPath points at a temporary local copy of the raw bytes. The
	// fetcher that produced it owns cleanup.
	LocalPath string
}
