package assistant

// OutputSink receives every sentence the assistant speaks while handling a
// command. The HTTP surface uses a capture sink per request; the CLI can plug
// in a TTS-backed one.
type OutputSink interface {
	Speak(text string)
}

// CaptureSink records utterances in order so the caller can return them all.
type CaptureSink struct {
	utterances []string
}

func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (s *CaptureSink) Speak(text string) {
	s.utterances = append(s.utterances, text)
}

// Utterances returns everything spoken so far, oldest first.
func (s *CaptureSink) Utterances() []string {
	return s.utterances
}

// Last returns the most recent utterance, or empty when nothing was spoken.
func (s *CaptureSink) Last() string {
	if len(s.utterances) == 0 {
		return ""
	}
	return s.utterances[len(s.utterances)-1]
}
