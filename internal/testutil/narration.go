package testutil

// Recorder collects narrated lines in order. It satisfies skill.Narrator.
type Recorder struct {
	Lines []string
}

// Narrate appends line.
func (r *Recorder) Narrate(line string) {
	r.Lines = append(r.Lines, line)
}

// Last returns the most recent line, or "".
func (r *Recorder) Last() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[len(r.Lines)-1]
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
}
