package transcode

// BinaryLocator defines the interface for resolving the transcoding binaries.
type BinaryLocator interface {
	Locate() (Binaries, error)
}
