// Package badge holds the static badge catalog and the rules that decide
// which badges a user has newly earned.
package badge

import "github.com/theirongolddev/finmate/internal/model"

func entry(cat model.BadgeCategory, id, name, emoji, desc string) model.Badge {
	return model.Badge{ID: id, Category: cat, Name: name, Emoji: emoji, Description: desc}
}

// Catalog is every badge that exists, grouped by category. Some entries have
// no rule yet and can only be awarded once one is added.
var Catalog = []model.Badge{
	entry(model.CategoryAchievement, "first_saver", "First Saver", "🌱", "First day under budget"),
	entry(model.CategoryAchievement, "week_warrior", "Week Warrior", "⚡", "7-day under-budget streak"),
	entry(model.CategoryAchievement, "fortnight_fighter", "Fortnight Fighter", "🔥", "14-day streak"),
	entry(model.CategoryAchievement, "month_master", "Month Master", "🏅", "30-day streak"),
	entry(model.CategoryAchievement, "quarter_champion", "Quarter Champion", "💫", "90-day streak"),
	entry(model.CategoryAchievement, "goal_getter", "Goal Getter", "🎯", "Completed first savings goal"),
	entry(model.CategoryAchievement, "budget_boss", "Budget Boss", "👑", "Entire month under budget"),
	entry(model.CategoryAchievement, "early_bird", "Early Bird", "🚀", "Logged expense before 9 AM"),

	entry(model.CategoryMilestone, "bronze_saver", "Bronze Saver", "🥉", "₹1,000 total saved"),
	entry(model.CategoryMilestone, "silver_saver", "Silver Saver", "🥈", "₹5,000 total saved"),
	entry(model.CategoryMilestone, "gold_saver", "Gold Saver", "🥇", "₹10,000 total saved"),
	entry(model.CategoryMilestone, "diamond_saver", "Diamond Saver", "💎", "₹25,000 total saved"),
	entry(model.CategoryMilestone, "platinum_elite", "Platinum Elite", "👑", "₹50,000 total saved"),
	entry(model.CategoryMilestone, "lakh_legend", "Lakh Legend", "🏆", "₹1,00,000 total saved"),
	entry(model.CategoryMilestone, "ten_percent_club", "10% Club", "📈", "Saved 10% of monthly income"),
	entry(model.CategoryMilestone, "twenty_percent_pro", "20% Pro", "📊", "Saved 20% of monthly income"),
	entry(model.CategoryMilestone, "thirty_percent_champion", "30% Champion", "💪", "Saved 30% of monthly income"),
	entry(model.CategoryMilestone, "emergency_ready", "Emergency Ready", "🛡️", "Emergency fund = 3 months expenses"),
	entry(model.CategoryMilestone, "fortress_built", "Fortress Built", "🏰", "Emergency fund = 6 months expenses"),

	entry(model.CategoryChallenge, "weekend_warrior", "Weekend Warrior", "🌙", "Under budget Sat + Sun"),
	entry(model.CategoryChallenge, "perfect_week", "Perfect Week", "🏆", "All 7 days under budget"),
	entry(model.CategoryChallenge, "no_takeout_champion", "No Takeout Champion", "🍕", "7 days without food delivery"),
	entry(model.CategoryChallenge, "coffee_cutter", "Coffee Cutter", "☕", "7 days without café spending"),
	entry(model.CategoryChallenge, "shopping_stopper", "Shopping Stopper", "🛒", "No impulse shopping for 14 days"),
	entry(model.CategoryChallenge, "entertainment_economist", "Entertainment Economist", "🎬", "Entertainment under ₹500 for a month"),
	entry(model.CategoryChallenge, "zero_day_hero", "Zero Day Hero", "🚫", "A day with ₹0 spent"),
	entry(model.CategoryChallenge, "triple_zero", "Triple Zero", "🌟", "3 consecutive zero-spend days"),
	entry(model.CategoryChallenge, "first_week_finisher", "First Week Finisher", "📅", "Under budget first 7 days of month"),
	entry(model.CategoryChallenge, "month_end_master", "Month End Master", "🎊", "Under budget last 7 days of month"),
	entry(model.CategoryChallenge, "biggest_saver", "Biggest Saver", "💸", "Personal best daily savings"),
	entry(model.CategoryChallenge, "comeback_king", "Comeback King", "🔄", "Recovered from overspending day"),
	entry(model.CategoryChallenge, "financial_scholar", "Financial Scholar", "🎓", "Used the app for 30 days straight"),

	entry(model.CategorySeasonal, "diwali_discipline", "Diwali Discipline", "🪔", "Under budget during Diwali week"),
	entry(model.CategorySeasonal, "holiday_hero", "Holiday Hero", "🎄", "Under budget during December"),
	entry(model.CategorySeasonal, "new_year_ninja", "New Year Ninja", "🎉", "Under budget first week of January"),
	entry(model.CategorySeasonal, "valentine_saver", "Valentine Saver", "💕", "Under budget on Feb 14th"),
}

// Categories lists badge categories in display order.
var Categories = []model.BadgeCategory{
	model.CategoryAchievement,
	model.CategoryMilestone,
	model.CategoryChallenge,
	model.CategorySeasonal,
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (model.Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return model.Badge{}, false
}

// ByCategory returns the catalog entries in cat, in catalog order.
func ByCategory(cat model.BadgeCategory) []model.Badge {
	var out []model.Badge
	for _, b := range Catalog {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

// Resolve maps ids to catalog entries, skipping unknown ids.
func Resolve(ids []string) []model.Badge {
	out := make([]model.Badge, 0, len(ids))
	for _, id := range ids {
		if b, ok := Lookup(id); ok {
			out = append(out, b)
		}
	}
	return out
}
