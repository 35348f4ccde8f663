package telegram

import (
	"fmt"
	"strings"

	"meal-planner/internal/app"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

func formatPlan(week planner.Week, plan planner.WeekPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Meal Plan: week of %s*\n\n", week))

	if len(plan.Slots()) == 0 {
		sb.WriteString("_Nothing planned yet. Use /set to add meals._")
		return sb.String()
	}

	for _, day := range planner.Days {
		var meals []string
		for _, meal := range planner.MealTypes {
			if name := plan[planner.SlotKey{Day: day, Meal: meal}]; name != "" {
				meals = append(meals, fmt.Sprintf("  %s: %s", meal, escape(name)))
			}
		}
		if len(meals) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n%s\n", day, strings.Join(meals, "\n")))
	}
	return sb.String()
}

func formatList(list shopping.GroceryList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	if len(list) == 0 {
		sb.WriteString("\n_The list is empty._")
		return sb.String()
	}

	order, groups := list.ByCategory()
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", escape(category)))
		for _, item := range groups[category] {
			mark := "•"
			if item.Checked {
				mark = "✅"
			}
			sb.WriteString(fmt.Sprintf("%s %s", mark, escape(item.Name)))
			if item.Quantity != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", escape(item.Quantity)))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatImportResult(res *app.ImportResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ %s\n", escape(res.Summary)))
	writeNames(&sb, "➕ Added", res.Added)
	writeNames(&sb, "✏️ Updated", res.Updated)
	writeNames(&sb, "➖ Removed", res.Removed)
	return sb.String()
}

func writeNames(sb *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = escape(n)
	}
	sb.WriteString(fmt.Sprintf("\n*%s:* %s", label, strings.Join(escaped, ", ")))
}

func formatRecipes(recipes []recipe.Recipe) string {
	var sb strings.Builder
	sb.WriteString("📖 *Recipes*\n\n")
	if len(recipes) == 0 {
		sb.WriteString("_No recipes yet. Send me a link to clip one._")
	}
	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("• %s (%d ingredients)\n", escape(r.Name), len(r.Ingredients)))
	}
	return sb.String()
}

func formatStats(stats *app.Stats) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Imports*\n")
	if len(stats.Daily) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range stats.Daily {
		sb.WriteString(fmt.Sprintf("• *%s*: %d imports (%d failed), +%d ~%d -%d items\n",
			d.Date, d.Imports, d.Failures, d.Added, d.Updated, d.Removed))
	}

	if len(stats.Recent) > 0 {
		last := stats.Recent[0]
		sb.WriteString(fmt.Sprintf("\n⏱ *Last import:* week %s, %s in %dms\n", last.Week, last.Status, last.Latency.Milliseconds()))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", stats.Health.AllocMB, stats.Health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", stats.Health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", stats.Health.DatabaseSize))
	return sb.String()
}
