package utils

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
)

// Common option blocks shared by deck-building commands
var InkFilterOptions = []discord.ApplicationCommandOption{
	discord.ApplicationCommandOptionString{
		Name:        "ink",
		Description: "Primary ink color",
		Required:    true,
		Choices:     inkChoices(),
	},
	discord.ApplicationCommandOptionString{
		Name:        "second_ink",
		Description: "Second ink color (optional)",
		Required:    false,
		Choices:     inkChoices(),
	},
	discord.ApplicationCommandOptionString{
		Name:        "archetype",
		Description: "Weighting profile",
		Required:    false,
		Choices: []discord.ApplicationCommandOptionChoiceString{
			{Name: "Default", Value: "default"},
			{Name: "Aggro", Value: "aggro"},
		},
	},
}

func inkChoices() []discord.ApplicationCommandOptionChoiceString {
	return []discord.ApplicationCommandOptionChoiceString{
		{Name: "🟡 Amber", Value: "Amber"},
		{Name: "🟣 Amethyst", Value: "Amethyst"},
		{Name: "🟢 Emerald", Value: "Emerald"},
		{Name: "🔴 Ruby", Value: "Ruby"},
		{Name: "🔵 Sapphire", Value: "Sapphire"},
		{Name: "⚪ Steel", Value: "Steel"},
	}
}

// FilterInfo holds all possible deck filter criteria
type FilterInfo struct {
	Inks      []string
	Archetype string
	Name      string
}

// BuildFilterDescription creates a formatted string of active filters
func BuildFilterDescription(filters FilterInfo) string {
	if !HasActiveFilters(filters) {
		return ""
	}

	var filterLines []string

	if len(filters.Inks) > 0 {
		filterLines = append(filterLines, formatFilterLine("🎨 Inks", strings.Join(filters.Inks, " / ")))
	}
	if filters.Archetype != "" {
		filterLines = append(filterLines, formatFilterLine("⚔️ Archetype", filters.Archetype))
	}
	if filters.Name != "" {
		filterLines = append(filterLines, formatFilterLine("📝 Name", filters.Name))
	}

	return "```md\n# Active Filters\n* " + strings.Join(filterLines, "\n* ") + "\n```"
}

// HasActiveFilters checks if any filters are active
func HasActiveFilters(filters FilterInfo) bool {
	return len(filters.Inks) > 0 ||
		filters.Archetype != "" ||
		filters.Name != ""
}

// InkEmoji returns the colored dot for an ink name
func InkEmoji(ink string) string {
	switch ink {
	case "Amber":
		return "🟡"
	case "Amethyst":
		return "🟣"
	case "Emerald":
		return "🟢"
	case "Ruby":
		return "🔴"
	case "Sapphire":
		return "🔵"
	case "Steel":
		return "⚪"
	default:
		return "🎨"
	}
}

func formatFilterLine(label string, value interface{}) string {
	return fmt.Sprintf("%s: %v", label, value)
}
