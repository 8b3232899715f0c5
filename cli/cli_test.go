package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/store"
	"github.com/nathoo/wayfarer/types"
)

// testDef returns a small world for CLI testing.
func testDef() types.WorldDef {
	return types.WorldDef{
		Title: "Test Game",
		Intro: "Welcome to the test.",
		Start: "hall",
		Rooms: []types.RoomDef{
			{
				ID: "hall", Name: "Hall", Desc: "A grand hall.",
				Exits: []types.ExitDef{{Direction: "n", To: "garden"}},
				Items: []types.EntityDef{{ID: "key", Kind: types.KindKey, Name: "rusty key"}},
			},
			{
				ID: "garden", Name: "Garden", Desc: "A peaceful garden.",
				Exits: []types.ExitDef{{Direction: "s", To: "hall"}},
				Items: []types.EntityDef{{ID: "wasp", Kind: types.KindEnemy, Name: "wasp", HP: 3, MaxDamage: 50, Angry: true}},
			},
		},
		Player: types.PlayerDef{HP: 10, MaxHP: 10},
	}
}

// maxDice always rolls the highest face.
type maxDice struct{}

func (maxDice) Roll(sides int) int { return sides }

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	w, err := world.Build(testDef())
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	var out bytes.Buffer
	c := &CLI{
		Engine: engine.New(w, engine.WithDice(maxDice{})),
		In:     strings.NewReader(input),
		Out:    &out,
		Store:  st,
	}
	return c, &out
}

func run(t *testing.T, c *CLI) {
	t.Helper()
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{"Test Game", "Welcome to the test.", "A grand hall.", "Goodbye."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if c.Engine.Turn != 0 {
		t.Errorf("the opening look should not take a turn, got %d", c.Engine.Turn)
	}
}

func TestCLI_EndOfInput(t *testing.T) {
	c, out := newTestCLI(t, "look\n")
	run(t, c)
	if strings.Count(out.String(), "A grand hall.") != 2 {
		t.Errorf("expected the hall twice:\n%s", out.String())
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "take key, go north\nquit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Taken.") || !strings.Contains(output, "A peaceful garden.") {
		t.Errorf("expected take and move output:\n%s", output)
	}
}

func TestCLI_CommentsSkipped(t *testing.T) {
	c, out := newTestCLI(t, "# go north\nq\n")
	run(t, c)
	if strings.Contains(out.String(), "garden") || c.Engine.Turn != 0 {
		t.Errorf("comment line should be ignored:\n%s", out.String())
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "inventory\n/quit\n")
	c.EchoInput = true
	run(t, c)
	if !strings.Contains(out.String(), "> inventory\n") {
		t.Errorf("expected echoed input:\n%s", out.String())
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{"/save", "/load", "/quit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	c, out := newTestCLI(t, "take key\n/save test\ndrop key\n/load test\ninventory\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Game saved to test.") {
		t.Error("expected save confirmation")
	}
	if !strings.Contains(output, "Game loaded from test (turn 1).") {
		t.Errorf("expected load confirmation:\n%s", output)
	}
	if !c.Engine.World.Player.Has("key") {
		t.Error("key should be back in the inventory after loading")
	}
}

func TestCLI_LoadMissing(t *testing.T) {
	c, out := newTestCLI(t, "/load nope\n/quit\n")
	run(t, c)
	if !strings.Contains(out.String(), `There is no save named "nope".`) {
		t.Errorf("expected missing save message:\n%s", out.String())
	}
}

func TestCLI_DeathAllowsOnlyMeta(t *testing.T) {
	c, out := newTestCLI(t, "/save before\nn\nlook\n/load before\nlook\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "You died.") {
		t.Fatalf("expected death:\n%s", output)
	}
	if !strings.Contains(output, "You are dead.") {
		t.Errorf("expected game commands refused after death:\n%s", output)
	}
	if c.Engine.Over || c.Engine.World.Current != "hall" {
		t.Error("loading should bring the player back")
	}
}

func TestCLI_Trace(t *testing.T) {
	c, out := newTestCLI(t, "/trace\ntake key\n/trace\nlook\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "[trace] verb=take noun=key") {
		t.Errorf("expected parse trace:\n%s", output)
	}
	if !strings.Contains(output, "[trace] outcome=active turn=1") {
		t.Errorf("expected outcome trace:\n%s", output)
	}
	if strings.Count(output, "[trace]") != 2 {
		t.Errorf("trace should stop after toggling off:\n%s", output)
	}
}

func TestCLI_Wrap(t *testing.T) {
	c := &CLI{Width: 20}
	got := c.wrap("the quick brown fox jumps over the lazy dog")
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
		if strings.HasSuffix(line, " ") {
			t.Errorf("line %q has trailing space", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrap lost words: %q", got)
	}

	c.Width = -1
	if got := c.wrap("a b"); got != "a b" {
		t.Errorf("negative width should not wrap, got %q", got)
	}
}

func TestCLI_Cancelled(t *testing.T) {
	c, _ := newTestCLI(t, "look\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
