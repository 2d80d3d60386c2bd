package player

// Sink plays local audio files. Decoding runs on its own goroutine; the
// methods only block while opening a file.
type Sink interface {
	// Append queues a local file for playback
	Append(path string) error

	// CanPlay reports whether path would be accepted by Append, without
	// touching what is playing
	CanPlay(path string) error

	Play()
	Pause()

	// Stop drops everything queued and releases the output
	Stop()

	// IsEmpty reports whether nothing is queued or playing
	IsEmpty() bool

	// SetVolume takes a gain in [0,1]
	SetVolume(v float32)
	Volume() float32
}

// Factory builds a fresh Sink for each playback start
type Factory func() (Sink, error)
