package album

import "fmt"

// TrackType classifies the audio content of a track, disc, or whole album.
// The enumeration is closed; decoding any other value fails.
type TrackType string

const (
	// TypeNormal is a song with vocals.
	TypeNormal TrackType = "normal"
	// TypeInstrumental is an accompaniment without vocals.
	TypeInstrumental TrackType = "instrumental"
	// TypeAbsolute is pure music not derived from a vocal piece.
	TypeAbsolute TrackType = "absolute"
	// TypeDrama is a voice-acted drama track.
	TypeDrama TrackType = "drama"
	// TypeRadio is a radio program track.
	TypeRadio TrackType = "radio"
	// TypeVocal is an a cappella or vocal-focused track.
	TypeVocal TrackType = "vocal"
)

var trackTypes = map[TrackType]struct{}{
	TypeNormal:       {},
	TypeInstrumental: {},
	TypeAbsolute:     {},
	TypeDrama:        {},
	TypeRadio:        {},
	TypeVocal:        {},
}

// Validate reports whether t names a member of the closed enumeration.
// The empty value is valid and means "inherit".
func (t TrackType) Validate() error {
	if t == "" {
		return nil
	}
	if _, ok := trackTypes[t]; !ok {
		return fmt.Errorf("unknown track type %q", string(t))
	}
	return nil
}

func (t TrackType) String() string { return string(t) }
