package core

const (
	LumiName          = "LumiBot"
	LumiRepositoryURL = "https://github.com/strandworks/lumibot"
	LumiVersion       = "0.1.0"
)

// Profile is the sender snapshot attached to every inbound event.
type Profile struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	IsBot        bool   `json:"is_bot"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Option is one answer to a quiz question with its score contribution.
type Option struct {
	Label string `json:"text"`
	Score int    `json:"score"`
}

// Question is one entry of the read-only question bank.
type Question struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Band is the three-way split of a final quiz score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)
