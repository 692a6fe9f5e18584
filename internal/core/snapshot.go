package core

// Snapshot is the ephemeral view of one clipboard change: the advertised
// format flags plus lazily-read, memoized content. Each format is read from
// the source at most once per cycle, even when both the prioritizer and the
// persistence step need it. Owned exclusively by the capture cycle.
type Snapshot struct {
	source  ClipboardSource
	formats Formats

	text  lazyRead[string]
	html  lazyRead[string]
	rtf   lazyRead[string]
	image lazyRead[string]
	files lazyRead[[]string]
}

type lazyRead[T any] struct {
	done  bool
	value T
	err   error
}

func (l *lazyRead[T]) get(read func() (T, error)) (T, error) {
	if !l.done {
		l.value, l.err = read()
		l.done = true
	}
	return l.value, l.err
}

// NewSnapshot reads the available-format flags for the current change.
func NewSnapshot(source ClipboardSource) (*Snapshot, error) {
	formats, err := source.AvailableFormats()
	if err != nil {
		return nil, err
	}
	return &Snapshot{source: source, formats: formats}, nil
}

// Formats returns the advertised format flags.
func (s *Snapshot) Formats() Formats {
	return s.formats
}

// Text returns the plain-text payload, reading it on first use.
func (s *Snapshot) Text() (string, error) {
	return s.text.get(s.source.ReadText)
}

// HTML returns the HTML payload, reading it on first use.
func (s *Snapshot) HTML() (string, error) {
	return s.html.get(s.source.ReadHTML)
}

// RTF returns the RTF payload, reading it on first use.
func (s *Snapshot) RTF() (string, error) {
	return s.rtf.get(s.source.ReadRTF)
}

// Image returns the encoded image blob, reading it on first use.
func (s *Snapshot) Image() (string, error) {
	return s.image.get(s.source.ReadImage)
}

// Files returns the copied file paths, reading them on first use.
func (s *Snapshot) Files() ([]string, error) {
	return s.files.get(s.source.ReadFiles)
}
