package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weekly-menu/internal/app"
	"weekly-menu/internal/clipper"
	"weekly-menu/internal/dish"
	"weekly-menu/internal/metrics"
	"weekly-menu/internal/pantry"
	"weekly-menu/internal/planner"
	"weekly-menu/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `🍽 *Weekly Menu*

/dishes - list the dishes
/add Name | ingredient, ingredient [| special]
/remove Dish
/special Dish [on|off]
/include Dish, /exclude Dish
/assign Day Slot [Dish]
/clear Day Slot, /reset
/plan - the week
/shopping [all] - what to buy
/have Ingredient, /need Ingredient
/pantry - what is at home

Send a recipe link to import it.`

const callbackAssign = "assign"

// response is what the bot sends back for one message.
type response struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

func textReply(format string, args ...any) response {
	return response{text: fmt.Sprintf(format, args...)}
}

// reply runs one message against the App.
func (b *Bot) reply(ctx context.Context, userID int64, text string) response {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return b.importURL(ctx, text)
	}

	cmd, args := splitCommand(text)
	switch cmd {
	case "", "start", "help":
		return response{text: helpText}
	case "dishes":
		return response{text: formatDishes(b.app.Dishes())}
	case "add":
		return b.addDish(ctx, args)
	case "remove":
		return b.withDish(args, func(d dish.Dish) response {
			if err := b.app.RemoveDish(ctx, d.ID); err != nil {
				return errorReply(err)
			}
			return textReply("🗑 Removed *%s*.", escape(d.Name))
		})
	case "special":
		return b.setSpecial(ctx, args)
	case "include", "exclude":
		include := cmd == "include"
		return b.withDish(args, func(d dish.Dish) response {
			if err := b.app.SetIncludeInPlanner(ctx, d.ID, include); err != nil {
				return errorReply(err)
			}
			if include {
				return textReply("✅ *%s* is back in the planner.", escape(d.Name))
			}
			return textReply("🚫 *%s* is hidden from the planner.", escape(d.Name))
		})
	case "assign":
		return b.assign(ctx, args)
	case "clear":
		day, slot, _, err := parseSlotArgs(args)
		if err != nil {
			return textReply("❌ %s", err.Error())
		}
		if err := b.app.ClearSlot(ctx, day, slot); err != nil {
			return errorReply(err)
		}
		return textReply("🧹 Cleared %s %s.", day, slot)
	case "reset":
		b.app.ResetPlan(ctx)
		return response{text: "🧹 The week is empty."}
	case "plan":
		return response{text: formatWeek(b.app.Week())}
	case "shopping":
		if strings.EqualFold(args, "all") {
			return response{text: formatShopping("🛒 *Shopping List*", b.app.ShoppingList())}
		}
		return response{text: formatShopping("🛒 *To Buy*", b.app.ToBuy())}
	case "have", "need":
		if err := b.app.SetAvailable(ctx, args, cmd == "have"); err != nil {
			return errorReply(err)
		}
		if cmd == "have" {
			return textReply("🏠 Got *%s* at home.", escape(pantry.Key(args)))
		}
		return textReply("📝 *%s* goes back on the list.", escape(pantry.Key(args)))
	case "pantry":
		return response{text: formatPantry(b.app.Pantry())}
	case "metrics":
		if userID != b.cfg.AdminTelegramID {
			return response{text: "⛔ *Access Denied*: Admin only."}
		}
		return b.metricsReport()
	}
	return textReply("🤷 Unknown command /%s. Try /help.", escape(cmd))
}

// splitCommand turns "/assign@bot Monday p" into ("assign", "Monday p").
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	head, args, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(args)
}

func (b *Bot) withDish(ref string, fn func(dish.Dish) response) response {
	if strings.TrimSpace(ref) == "" {
		return response{text: "❌ Which dish?"}
	}
	d, ok := b.app.FindDish(ref)
	if !ok {
		return textReply("❌ No dish called *%s*.", escape(ref))
	}
	return fn(d)
}

func (b *Bot) addDish(ctx context.Context, args string) response {
	parts := strings.Split(args, "|")
	name := strings.TrimSpace(parts[0])
	var ingredients []string
	if len(parts) > 1 {
		ingredients = dish.SplitIngredients(parts[1])
	}
	special := len(parts) > 2 && strings.EqualFold(strings.TrimSpace(parts[2]), "special")

	d, err := b.app.AddDish(ctx, name, ingredients, special)
	if err != nil {
		return errorReply(err)
	}
	return textReply("✅ Added *%s* with %d ingredients.", escape(d.Name), len(d.Ingredients))
}

func (b *Bot) setSpecial(ctx context.Context, args string) response {
	special := true
	ref := args
	if i := strings.LastIndex(args, " "); i >= 0 {
		switch strings.ToLower(args[i+1:]) {
		case "on":
			ref = args[:i]
		case "off":
			special, ref = false, args[:i]
		}
	}
	return b.withDish(ref, func(d dish.Dish) response {
		if err := b.app.SetSpecial(ctx, d.ID, special); err != nil {
			return errorReply(err)
		}
		if special {
			return textReply("⭐ *%s* is special.", escape(d.Name))
		}
		return textReply("*%s* is an everyday dish.", escape(d.Name))
	})
}

func (b *Bot) assign(ctx context.Context, args string) response {
	day, slot, ref, err := parseSlotArgs(args)
	if err != nil {
		return textReply("❌ %s", err.Error())
	}
	if ref == "" {
		return response{
			text:     fmt.Sprintf("Pick a dish for *%s %s*:", day, slot),
			keyboard: choiceKeyboard(day, slot, b.app.Choices(day, slot)),
		}
	}
	return b.withDish(ref, func(d dish.Dish) response {
		if err := b.app.Assign(ctx, day, slot, d.ID); err != nil {
			return errorReply(err)
		}
		return textReply("📅 *%s %s*: %s", day, slot, escape(d.Name))
	})
}

// parseSlotArgs reads "Day Slot [rest]".
func parseSlotArgs(args string) (planner.Day, planner.Slot, string, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", "", "", errors.New("usage: Day Slot, e.g. Monday primary")
	}
	day, ok := planner.ParseDay(fields[0])
	if !ok {
		return "", "", "", fmt.Errorf("unknown day %q", fields[0])
	}
	slot, ok := planner.ParseSlot(fields[1])
	if !ok {
		return "", "", "", fmt.Errorf("unknown slot %q", fields[1])
	}
	return day, slot, strings.Join(fields[2:], " "), nil
}

// choiceKeyboard offers one button per planner dish. Special dishes that
// cannot be chosen are shown locked and do nothing.
func choiceKeyboard(day planner.Day, slot planner.Slot, choices []app.Choice) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices)+1)
	for _, c := range choices {
		label := c.Dish.Name
		data := strings.Join([]string{callbackAssign, string(day), string(slot), c.Dish.ID}, "|")
		if c.Dish.Special {
			label = "⭐ " + label
		}
		if c.Disabled {
			label = "🔒 " + c.Dish.Name
			data = "locked"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	clearData := strings.Join([]string{callbackAssign, string(day), string(slot), ""}, "|")
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("(nothing)", clearData)))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

// callback runs a keyboard press. It returns the new message text, or an
// empty text and a short notice when the message should stay.
func (b *Bot) callback(ctx context.Context, data string) (string, string) {
	if data == "locked" {
		return "", "Another slot already has a special dish."
	}
	parts := strings.Split(data, "|")
	if len(parts) != 4 || parts[0] != callbackAssign {
		return "", ""
	}
	day, slot := planner.Day(parts[1]), planner.Slot(parts[2])
	if err := b.app.Assign(ctx, day, slot, parts[3]); err != nil {
		return "", describe(err)
	}
	if parts[3] == "" {
		return fmt.Sprintf("🧹 Cleared %s %s.", day, slot), ""
	}
	d, _ := b.app.FindDish(parts[3])
	return fmt.Sprintf("📅 *%s %s*: %s", day, slot, escape(d.Name)), ""
}

func (b *Bot) importURL(ctx context.Context, url string) response {
	d, err := b.app.Import(ctx, b.clipper, url)
	if err != nil {
		b.logger.Warn("import failed", "url", url, "err", err)
		if errors.Is(err, clipper.ErrNoRecipe) {
			return response{text: "❌ Couldn't find a recipe on that page."}
		}
		return errorReply(err)
	}
	return response{text: fmt.Sprintf("✂️ Imported *%s*\n\n%s", escape(d.Name), formatIngredients(d.Ingredients))}
}

func (b *Bot) metricsReport() response {
	totals, err := b.recorder.Totals()
	if err != nil {
		return response{text: "❌ Error fetching metrics."}
	}
	health := metrics.ReadHealth(b.cfg.DataDir)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")
	sb.WriteString(fmt.Sprintf("• Changes: %d\n", totals.Mutations))
	sb.WriteString(fmt.Sprintf("• Rejected: %d\n", totals.Rejections))
	sb.WriteString(fmt.Sprintf("• Failed saves: %d\n", totals.PersistFailures))

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s in %d files\n", health.DataSize(), health.DataFiles))
	return response{text: sb.String()}
}

func errorReply(err error) response {
	return response{text: "❌ " + describe(err)}
}

// describe turns a rejection into a sentence for the chat.
func describe(err error) string {
	switch {
	case errors.Is(err, dish.ErrEmptyName):
		return "A dish needs a name."
	case errors.Is(err, dish.ErrUnknownDish):
		return "That dish no longer exists."
	case errors.Is(err, dish.ErrDefaultDish):
		return "Default dishes can't be removed. Try /exclude instead."
	case errors.Is(err, planner.ErrSpecialConflict):
		return "Only one special dish per week."
	case errors.Is(err, planner.ErrExcludedDish):
		return "That dish is hidden from the planner."
	case errors.Is(err, planner.ErrUnknownSlot):
		return "Unknown day or slot."
	case errors.Is(err, pantry.ErrEmptyKey):
		return "Which ingredient?"
	}
	return strings.ReplaceAll(err.Error(), "`", "'")
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatDishes(dishes []dish.Dish) string {
	if len(dishes) == 0 {
		return "_No dishes yet._ Add one with /add."
	}
	var sb strings.Builder
	sb.WriteString("📖 *Dishes*\n\n")
	for _, d := range dishes {
		sb.WriteString("• " + escape(d.Name))
		if d.Special {
			sb.WriteString(" ⭐")
		}
		if d.IsDefault {
			sb.WriteString(" 📌")
		}
		if !d.IncludeInPlanner {
			sb.WriteString(" 🚫")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return "_No ingredients._"
	}
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString("• " + escape(ing) + "\n")
	}
	return sb.String()
}

func formatWeek(week []app.DayView) string {
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Menu*\n\n")
	for _, day := range week {
		sb.WriteString(fmt.Sprintf("*%s*: %s", day.Day, slotText(day.Primary)))
		if day.Secondary.DishName != "" {
			sb.WriteString(" + " + slotText(day.Secondary))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func slotText(v app.SlotView) string {
	if v.DishName == "" {
		return "-"
	}
	if v.Special {
		return escape(v.DishName) + " ⭐"
	}
	return escape(v.DishName)
}

func formatShopping(title string, items []shopping.Item) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	if len(items) == 0 {
		sb.WriteString("_Nothing to buy._\n")
	}
	for _, item := range items {
		if item.Count > 1 {
			sb.WriteString(fmt.Sprintf("• %s ×%d\n", escape(item.Name), item.Count))
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s\n", escape(item.Name)))
	}
	return sb.String()
}

func formatPantry(items []string) string {
	if len(items) == 0 {
		return "🏠 _Nothing marked at home._"
	}
	var sb strings.Builder
	sb.WriteString("🏠 *At Home*\n\n")
	for _, item := range items {
		sb.WriteString("• " + escape(item) + "\n")
	}
	return sb.String()
}
