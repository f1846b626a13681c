package model

import "strings"

// Codec is the target audio codec passed to the extract-audio post-processor
type Codec string

const (
	CodecMP3  Codec = "mp3"
	CodecWAV  Codec = "wav"
	CodecFLAC Codec = "flac"
	CodecOGG  Codec = "ogg"
	CodecM4A  Codec = "m4a"
)

// DefaultCodec is used when no valid codec has been persisted
const DefaultCodec = CodecWAV

// AllCodecs returns the supported codecs in button order
func AllCodecs() []Codec {
	return []Codec{CodecMP3, CodecWAV, CodecFLAC, CodecOGG, CodecM4A}
}

// IsValid reports whether c is one of the supported codecs
func (c Codec) IsValid() bool {
	for _, known := range AllCodecs() {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the upper-case name shown on buttons (e.g. "MP3")
func (c Codec) Label() string {
	return strings.ToUpper(string(c))
}

// String returns the string representation of Codec
func (c Codec) String() string {
	return string(c)
}

// ParseCodec normalizes s and returns the matching codec, or false if unknown
func ParseCodec(s string) (Codec, bool) {
	c := Codec(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", false
	}
	return c, true
}
