package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Service is the part of the application the bot drives.
type Service interface {
	Import(ctx context.Context, week planner.Week) (*app.ImportResult, error)
	Plan(ctx context.Context, week planner.Week) (planner.WeekPlan, error)
	Assign(ctx context.Context, week planner.Week, slot planner.SlotKey, recipeName string) (bool, error)
	Clear(ctx context.Context, week planner.Week, slot planner.SlotKey) error
	GroceryList(ctx context.Context) (shopping.GroceryList, error)
	CheckItem(ctx context.Context, name string, checked bool) error
	Recipes() []recipe.Recipe
	ClipRecipe(ctx context.Context, url string) (*recipe.Recipe, error)
	Stats(ctx context.Context, days int) (*app.Stats, error)
}

// Sender delivers messages to Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wraps the Telegram API and the meal planner service.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender Sender
	svc    Service
	cfg    *config.Config
	now    func() time.Time

	mu        sync.Mutex
	importing map[string]bool
	wg        sync.WaitGroup
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, svc Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", webhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return newBot(api, api, cfg, svc), nil
}

func newBot(api *tgbotapi.BotAPI, sender Sender, cfg *config.Config, svc Service) *Bot {
	return &Bot{
		api:       api,
		sender:    sender,
		svc:       svc,
		cfg:       cfg,
		now:       time.Now,
		importing: make(map[string]bool),
	}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Wait blocks until in-flight messages are processed.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.cfg.IsAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.processMessage(update.Message)
	}()
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text := strings.TrimSpace(msg.Text)
	// A bare link is a clip request.
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		text = "/clip " + text
	}
	cmd, args := parseCommand(text)

	statusID := 0
	if status := statusText(cmd); status != "" {
		sent, err := b.send(msg.Chat.ID, status)
		if err != nil {
			log.Printf("Failed to send initial reply: %v", err)
		} else {
			statusID = sent.MessageID
		}
	}

	reply := b.handleCommand(ctx, msg.From.ID, cmd, args)

	if statusID != 0 {
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, statusID, reply)
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.sender.Send(edit); err != nil {
			log.Printf("Failed to edit reply: %v", err)
		}
		return
	}
	if _, err := b.send(msg.Chat.ID, reply); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) (tgbotapi.Message, error) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ParseMode = tgbotapi.ModeMarkdown
	return b.sender.Send(reply)
}

func statusText(cmd string) string {
	switch cmd {
	case "import":
		return "🛒 *Importing...* \n(Updating your grocery list)"
	case "clip":
		return "✂️ *Clipping recipe...* \n(Reading the ingredient list)"
	}
	return ""
}

// handleCommand runs a command and returns the Markdown reply.
func (b *Bot) handleCommand(ctx context.Context, userID int64, cmd string, args []string) string {
	switch cmd {
	case "start", "help":
		return helpText
	case "plan":
		return b.handlePlan(ctx, args)
	case "set":
		return b.handleSet(ctx, args)
	case "clear":
		return b.handleClear(ctx, args)
	case "import":
		return b.handleImport(ctx, args)
	case "list":
		return b.handleList(ctx)
	case "check", "uncheck":
		return b.handleCheck(ctx, args, cmd == "check")
	case "recipes":
		return formatRecipes(b.svc.Recipes())
	case "clip":
		return b.handleClip(ctx, args)
	case "stats":
		if userID != b.cfg.AdminTelegramID {
			return "⛔ *Access Denied*: Admin only."
		}
		return b.handleStats(ctx)
	default:
		return "🤔 Unknown command. Send /help to see what I can do."
	}
}

func (b *Bot) handlePlan(ctx context.Context, args []string) string {
	week, _, err := b.weekArg(args)
	if err != nil {
		return errorText(err)
	}
	plan, err := b.svc.Plan(ctx, week)
	if err != nil {
		log.Printf("Error loading plan: %v", err)
		return errorText(err)
	}
	return formatPlan(week, plan)
}

func (b *Bot) handleSet(ctx context.Context, args []string) string {
	week, args, err := b.weekArg(args)
	if err != nil {
		return errorText(err)
	}
	if len(args) < 2 {
		return "Usage: `/set [next] Mon-Dinner Recipe name`"
	}
	slot, err := planner.ParseSlotKey(args[0])
	if err != nil {
		return errorText(err)
	}
	name := strings.Join(args[1:], " ")

	known, err := b.svc.Assign(ctx, week, slot, name)
	if err != nil {
		log.Printf("Error assigning %s: %v", slot, err)
		return errorText(err)
	}

	reply := fmt.Sprintf("✅ *%s* (week of %s): %s", slot, week, escape(name))
	if !known {
		reply += "\n_This recipe is not in the catalog, so it adds no groceries._"
	}
	return reply
}

func (b *Bot) handleClear(ctx context.Context, args []string) string {
	week, args, err := b.weekArg(args)
	if err != nil {
		return errorText(err)
	}
	if len(args) != 1 {
		return "Usage: `/clear [next] Mon-Dinner`"
	}
	slot, err := planner.ParseSlotKey(args[0])
	if err != nil {
		return errorText(err)
	}
	if err := b.svc.Clear(ctx, week, slot); err != nil {
		log.Printf("Error clearing %s: %v", slot, err)
		return errorText(err)
	}
	return fmt.Sprintf("🗑 Cleared *%s* (week of %s).", slot, week)
}

func (b *Bot) handleImport(ctx context.Context, args []string) string {
	week, _, err := b.weekArg(args)
	if err != nil {
		return errorText(err)
	}

	if !b.startImport(week) {
		return fmt.Sprintf("⏳ An import for the week of %s is already running.", week)
	}
	defer b.finishImport(week)

	res, err := b.svc.Import(ctx, week)
	if err != nil {
		log.Printf("Error importing week %s: %v", week, err)
		return errorText(err)
	}
	return formatImportResult(res)
}

func (b *Bot) startImport(week planner.Week) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.importing[week.String()] {
		return false
	}
	b.importing[week.String()] = true
	return true
}

func (b *Bot) finishImport(week planner.Week) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.importing, week.String())
}

func (b *Bot) handleList(ctx context.Context) string {
	list, err := b.svc.GroceryList(ctx)
	if err != nil {
		log.Printf("Error loading grocery list: %v", err)
		return errorText(err)
	}
	return formatList(list)
}

func (b *Bot) handleCheck(ctx context.Context, args []string, checked bool) string {
	if len(args) == 0 {
		return "Usage: `/check Item name`"
	}
	name := strings.Join(args, " ")
	if err := b.svc.CheckItem(ctx, name, checked); err != nil {
		if errors.Is(err, shopping.ErrItemNotFound) {
			return fmt.Sprintf("🤷 *%s* is not on the list.", escape(name))
		}
		log.Printf("Error checking %s: %v", name, err)
		return errorText(err)
	}
	if checked {
		return fmt.Sprintf("✅ Checked off *%s*.", escape(name))
	}
	return fmt.Sprintf("↩️ *%s* is back on the list.", escape(name))
}

func (b *Bot) handleClip(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "Usage: `/clip https://example.com/recipe`"
	}
	rec, err := b.svc.ClipRecipe(ctx, args[0])
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		if errors.Is(err, clipper.ErrNoIngredients) {
			return "❌ *No ingredient list found on that page.*"
		}
		return errorText(err)
	}
	return fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Ingredients:* %d\n\nPlan it with `/set Mon-Dinner %s`",
		escape(rec.Name), len(rec.Ingredients), rec.Name)
}

func (b *Bot) handleStats(ctx context.Context) string {
	stats, err := b.svc.Stats(ctx, 7)
	if err != nil {
		log.Printf("Error fetching stats: %v", err)
		return "❌ Error fetching metrics."
	}
	return formatStats(stats)
}

// weekArg consumes an optional leading week argument ("this", "next" or a
// date) and defaults to the current week.
func (b *Bot) weekArg(args []string) (planner.Week, []string, error) {
	if len(args) > 0 {
		a := strings.ToLower(args[0])
		if a == "this" || a == "next" || (len(a) == 10 && a[4] == '-') {
			week, err := app.ResolveWeek(a, b.now())
			return week, args[1:], err
		}
	}
	week, err := app.ResolveWeek("", b.now())
	return week, args, err
}

// parseCommand splits "/cmd@bot a b" into "cmd" and its arguments.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", fields
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), fields[1:]
}

func errorText(err error) string {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	return fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeErr)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

const helpText = `🧑‍🍳 *Meal Planner*

/plan [next] - show the week's meals
/set [next] Mon-Dinner Recipe - plan a meal
/clear [next] Mon-Dinner - remove a meal
/import [next] - update the grocery list from the plan
/list - show the grocery list
/check Item, /uncheck Item - tick items off
/recipes - list known recipes
/clip URL - add a recipe from a web page`
