package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/planner"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	application, err := app.NewApp(ctx, cfg, db, nil)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := run(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, a *app.App, command string, args []string) error {
	switch command {
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		weekArg := fs.String("week", "", `Week to import: "next" or a date in the week (default: this week)`)
		fs.Parse(args)

		week, err := app.ResolveWeek(*weekArg, time.Now())
		if err != nil {
			return err
		}
		res, err := a.Import(ctx, week)
		if err != nil {
			return err
		}
		fmt.Println(res.Summary)
		printNames("Added", res.Added)
		printNames("Updated", res.Updated)
		printNames("Removed", res.Removed)

	case "plan":
		fs := flag.NewFlagSet("plan", flag.ExitOnError)
		weekArg := fs.String("week", "", `Week to show: "next" or a date in the week`)
		fs.Parse(args)

		week, err := app.ResolveWeek(*weekArg, time.Now())
		if err != nil {
			return err
		}
		plan, err := a.Plan(ctx, week)
		if err != nil {
			return err
		}
		app.PrintPlan(os.Stdout, week, plan)

	case "set", "clear":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		weekArg := fs.String("week", "", `Week to edit: "next" or a date in the week`)
		fs.Parse(args)

		week, err := app.ResolveWeek(*weekArg, time.Now())
		if err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return fmt.Errorf("missing slot, e.g. Mon-Dinner")
		}
		slot, err := planner.ParseSlotKey(fs.Arg(0))
		if err != nil {
			return err
		}

		if command == "clear" {
			if err := a.Clear(ctx, week, slot); err != nil {
				return err
			}
			fmt.Printf("Cleared %s for week of %s.\n", slot, week)
			return nil
		}

		name := strings.Join(fs.Args()[1:], " ")
		if name == "" {
			return fmt.Errorf("missing recipe name")
		}
		known, err := a.Assign(ctx, week, slot, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s (week of %s): %s\n", slot, week, name)
		if !known {
			fmt.Println("Warning: recipe not in the catalog; it will add no groceries.")
		}

	case "list":
		list, err := a.GroceryList(ctx)
		if err != nil {
			return err
		}
		app.PrintList(os.Stdout, list)

	case "check", "uncheck":
		name := strings.Join(args, " ")
		if name == "" {
			return fmt.Errorf("missing item name")
		}
		return a.CheckItem(ctx, name, command == "check")

	case "recipes":
		for _, r := range a.Recipes() {
			fmt.Printf("- %s (%d ingredients)\n", r.Name, len(r.Ingredients))
		}

	case "seed-recipes":
		n, err := a.SeedRecipes(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d recipes into the database.\n", n)

	case "clip":
		if len(args) != 1 {
			return fmt.Errorf("usage: clip <url>")
		}
		rec, err := a.ClipRecipe(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Saved '%s' with %d ingredients.\n", rec.Name, len(rec.Ingredients))

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(args)

		affected, err := a.CleanupMetrics(ctx, *days)
		if err != nil {
			return err
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	return nil
}

func printNames(label string, names []string) {
	if len(names) > 0 {
		fmt.Printf("  %s: %s\n", label, strings.Join(names, ", "))
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  import [-week W]                Update the grocery list from the week's plan")
	fmt.Println("  plan [-week W]                  Show the week's meals")
	fmt.Println("  set [-week W] <slot> <recipe>   Plan a meal, e.g. set Mon-Dinner Chicken Tacos")
	fmt.Println("  clear [-week W] <slot>          Remove a planned meal")
	fmt.Println("  list                            Show the grocery list")
	fmt.Println("  check|uncheck <item>            Tick an item off the grocery list")
	fmt.Println("  recipes                         List known recipes")
	fmt.Println("  seed-recipes                    Store the built-in recipes in the database")
	fmt.Println("  clip <url>                      Add a recipe from a web page")
	fmt.Println("  metrics-cleanup [-days N]       Remove old import metrics")
}
