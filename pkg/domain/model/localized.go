package model

// LocalizedText maps a language code to display text. The engine carries it
// through untouched.
type LocalizedText map[string]string

// Copy returns a copy of the map
func (t LocalizedText) Copy() LocalizedText {
	if t == nil {
		return nil
	}
	copied := make(LocalizedText, len(t))
	for k, v := range t {
		copied[k] = v
	}
	return copied
}
