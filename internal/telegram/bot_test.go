package telegram

import (
	"context"
	"io"
	"strings"
	"testing"

	"weekly-menu/internal/app"
	"weekly-menu/internal/clipper"
	"weekly-menu/internal/config"
	"weekly-menu/internal/dish"
	"weekly-menu/internal/metrics"
	"weekly-menu/internal/planner"
	"weekly-menu/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = 42

type stubClipper struct{}

func (stubClipper) ClipURL(_ context.Context, url string) (*clipper.Draft, error) {
	if strings.Contains(url, "empty") {
		return nil, clipper.ErrNoRecipe
	}
	return &clipper.Draft{Name: "Ramen", Ingredients: []string{"noodles", "broth"}, SourceURL: url}, nil
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	seed := []dish.Dish{{ID: "seed-rib", Name: "Prime Rib", Ingredients: []string{"rib"}, IncludeInPlanner: true, Special: true}}
	recorder := metrics.NewRecorder()
	logger := log.New(io.Discard)
	a, err := app.Load(context.Background(), kv, seed, recorder, logger)
	require.NoError(t, err)

	return &Bot{
		app:      a,
		clipper:  stubClipper{},
		recorder: recorder,
		cfg:      &config.Config{AdminTelegramID: adminID, DataDir: t.TempDir()},
		logger:   logger,
	}
}

func send(b *Bot, text string) response {
	return b.reply(context.Background(), adminID, text)
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in, cmd, args string
	}{
		{"/plan", "plan", ""},
		{"/Assign@menu_bot Monday p Tacos", "assign", "Monday p Tacos"},
		{"/have   milk ", "have", "milk"},
		{"hello", "", "hello"},
	}
	for _, tt := range tests {
		cmd, args := splitCommand(strings.TrimSpace(tt.in))
		assert.Equal(t, tt.cmd, cmd, tt.in)
		assert.Equal(t, tt.args, args, tt.in)
	}
}

func TestParseSlotArgs(t *testing.T) {
	day, slot, rest, err := parseSlotArgs("tue s Fish and chips")
	require.NoError(t, err)
	assert.Equal(t, planner.Tuesday, day)
	assert.Equal(t, planner.Secondary, slot)
	assert.Equal(t, "Fish and chips", rest)

	_, _, _, err = parseSlotArgs("Monday")
	assert.Error(t, err)
	_, _, _, err = parseSlotArgs("Funday p")
	assert.Error(t, err)
	_, _, _, err = parseSlotArgs("Monday third")
	assert.Error(t, err)
}

func TestReplyPlanningFlow(t *testing.T) {
	b := newTestBot(t)

	out := send(b, "/add Tacos | Tortillas, beans")
	assert.Contains(t, out.text, "Added *Tacos* with 2 ingredients")

	out = send(b, "/assign Monday primary tacos")
	assert.Contains(t, out.text, "*Monday primary*: Tacos")

	out = send(b, "/shopping")
	assert.Contains(t, out.text, "• beans")
	assert.Contains(t, out.text, "• Tortillas")

	send(b, "/have tortillas")
	out = send(b, "/shopping")
	assert.NotContains(t, out.text, "Tortillas")
	out = send(b, "/shopping all")
	assert.Contains(t, out.text, "Tortillas")

	out = send(b, "/plan")
	assert.Contains(t, out.text, "*Monday*: Tacos")
	assert.Contains(t, out.text, "*Tuesday*: -")

	out = send(b, "/remove Tacos")
	assert.Contains(t, out.text, "Removed *Tacos*")
	assert.Contains(t, send(b, "/plan").text, "*Monday*: -")
}

func TestReplySpecialConflict(t *testing.T) {
	b := newTestBot(t)
	send(b, "/add Seafood | prawns | special")

	assert.Contains(t, send(b, "/assign mon p Prime Rib").text, "Prime Rib")
	out := send(b, "/assign tue p Seafood")
	assert.Contains(t, out.text, "Only one special dish per week")

	out = send(b, "/assign tue p")
	require.NotNil(t, out.keyboard)
	var locked []string
	for _, row := range out.keyboard.InlineKeyboard {
		if row[0].CallbackData != nil && *row[0].CallbackData == "locked" {
			locked = append(locked, row[0].Text)
		}
	}
	assert.ElementsMatch(t, []string{"🔒 Prime Rib", "🔒 Seafood"}, locked)
}

func TestReplyRejections(t *testing.T) {
	b := newTestBot(t)

	assert.Contains(t, send(b, "/add | eggs").text, "A dish needs a name")
	assert.Contains(t, send(b, "/remove Prime Rib").text, "Default dishes can't be removed")
	assert.Contains(t, send(b, "/remove Pizza").text, "No dish called")
	assert.Contains(t, send(b, "/have").text, "Which ingredient?")
	assert.Contains(t, send(b, "/bogus").text, "Unknown command")
}

func TestReplySpecialToggleAndExclude(t *testing.T) {
	b := newTestBot(t)

	assert.Contains(t, send(b, "/special Prime Rib off").text, "everyday dish")
	d, ok := b.app.FindDish("seed-rib")
	require.True(t, ok)
	assert.False(t, d.Special)

	assert.Contains(t, send(b, "/exclude prime rib").text, "hidden from the planner")
	out := send(b, "/assign mon p Prime Rib")
	assert.Contains(t, out.text, "hidden from the planner")
	assert.Contains(t, send(b, "/include prime rib").text, "back in the planner")
}

func TestCallback(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()

	text, notice := b.callback(ctx, "assign|Wednesday|secondary|seed-rib")
	assert.Empty(t, notice)
	assert.Contains(t, text, "Prime Rib")
	assert.Equal(t, "seed-rib", b.app.Week()[2].Secondary.DishID)

	text, _ = b.callback(ctx, "assign|Wednesday|secondary|")
	assert.Contains(t, text, "Cleared")
	assert.Empty(t, b.app.Week()[2].Secondary.DishID)

	text, notice = b.callback(ctx, "locked")
	assert.Empty(t, text)
	assert.NotEmpty(t, notice)

	text, notice = b.callback(ctx, "assign|Someday|primary|seed-rib")
	assert.Empty(t, text)
	assert.Equal(t, "Unknown day or slot.", notice)
}

func TestReplyImport(t *testing.T) {
	b := newTestBot(t)

	out := send(b, "https://example.com/ramen")
	assert.Contains(t, out.text, "Imported *Ramen*")
	assert.Contains(t, out.text, "• noodles")
	_, ok := b.app.FindDish("ramen")
	assert.True(t, ok)

	out = send(b, "https://example.com/empty")
	assert.Contains(t, out.text, "Couldn't find a recipe")
}

func TestReplyMetricsAdminOnly(t *testing.T) {
	b := newTestBot(t)
	send(b, "/add Soup")

	out := b.reply(context.Background(), 7, "/metrics")
	assert.Contains(t, out.text, "Access Denied")

	out = send(b, "/metrics")
	assert.Contains(t, out.text, "• Changes: 1")
	assert.Contains(t, out.text, "System Health")
}
