package panel

// Tone selects how a renderer styles a banner.
type Tone string

// Banner tones.
const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// Banner is the inline result message shown after a submit.
type Banner struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
	Loading bool   `json:"loading,omitempty"`
}

// IsError reports whether the banner carries a failure.
func (b *Banner) IsError() bool {
	return b != nil && b.Tone == ToneDanger
}
