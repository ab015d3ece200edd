package input

// SimpleInputProcessor processes keys against a fixed set of mappings.
type SimpleInputProcessor interface {
	// CapturesInput returns whether the processor is in the middle of a
	// sequence and should get the next key before anyone else.
	CapturesInput() bool

	// ProcessInput returns whether the key was part of a mapping.
	ProcessInput(key Key) bool

	// Pending returns the partial sequence typed so far.
	Pending() string

	// GetHelp returns the mappings of the processor.
	GetHelp() Help
}
