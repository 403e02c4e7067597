package model

// BadgeCategory groups badges in the catalog.
type BadgeCategory string

// Badge categories.
const (
	CategoryAchievement BadgeCategory = "achievement"
	CategoryMilestone   BadgeCategory = "milestone"
	CategoryChallenge   BadgeCategory = "challenge"
	CategorySeasonal    BadgeCategory = "seasonal"
)

// Badge is a read-only catalog entry.
type Badge struct {
	ID          string
	Category    BadgeCategory
	Name        string
	Emoji       string
	Description string
}
