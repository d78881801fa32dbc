package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorError   = 0xED4245 // Red (alias for ColorDanger)
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xFFD700
	ColorEmpty   = 0xFFA500 // Orange, used for empty result sets
)

// Embed limits enforced by Discord
const (
	MaxTitleLength       = 256
	MaxFieldLength       = 1024
	MaxDescriptionLength = 4096
	MaxEmbedFields       = 25
	MaxLabelLength       = 80
	MaxSelectOptions     = 25
	MaxOptionLabelLength = 100
	TruncationMarker     = "..."
)

// UI constants
const (
	MaxButtonsPerRow = 5
	MaxActionRows    = 5
)

// Placeholder is rendered for any absent upstream value
const Placeholder = "N/A"

// Page sizes per paginated view
const (
	SeasonsPageSize = 5
	TeamsPageSize   = 10
	WeeksPerPage    = 2
	StandingsTopN   = 10
	PlayersShown    = 15
	RecentResults   = 3
)

// WeekBlockLength caps a single week of fixtures inside one embed field
const WeekBlockLength = 900
