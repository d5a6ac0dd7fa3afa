package termhost_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/engine"
	"github.com/plus3/momo/engine/termhost"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newBackend(t *testing.T) (*termhost.Backend, tcell.SimulationScreen, *time.Time) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	now := epoch
	b := termhost.New(
		termhost.WithScreen(screen),
		termhost.WithNow(func() time.Time { return now }),
		termhost.WithCellSize(10, 10),
	)
	require.NoError(t, b.Startup())
	screen.SetSize(20, 10)
	t.Cleanup(b.Shutdown)
	return b, screen, &now
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestDraw(t *testing.T) {
	b, screen, _ := newBackend(t)
	b.SetGlyph("ship", '@')

	err := b.Draw([]engine.Drawable{
		{Image: "ship", Position: engine.Vec2{X: 25, Y: 15}},
		{Image: "unknown", Position: engine.Vec2{X: 0, Y: 0}},
		{Image: "ship", Position: engine.Vec2{X: 500, Y: 0}},
		{Image: "ship", Position: engine.Vec2{X: -5, Y: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, '@', cellAt(screen, 2, 1))
	assert.Equal(t, termhost.PlaceholderGlyph, cellAt(screen, 0, 0))

	t.Run("later drawables win a shared cell", func(t *testing.T) {
		b.SetGlyph("rock", '*')
		require.NoError(t, b.Draw([]engine.Drawable{
			{Image: "ship", Position: engine.Vec2{X: 1, Y: 1}},
			{Image: "rock", Position: engine.Vec2{X: 2, Y: 2}},
		}))
		assert.Equal(t, '*', cellAt(screen, 0, 0))
	})
}

func TestCell(t *testing.T) {
	b := termhost.New(termhost.WithCellSize(8, 16))

	x, y := b.Cell(engine.Vec2{X: 17, Y: 33})
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	x, y = b.Cell(engine.Vec2{X: -0.5, Y: 4})
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)
}

func TestKeyHold(t *testing.T) {
	b, screen, now := newBackend(t)

	screen.InjectKey(tcell.KeyRune, 'W', tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	b.PollEvents()

	assert.True(t, b.KeyPressed(engine.KeyW))
	assert.True(t, b.KeyPressed(engine.KeyUp))
	assert.False(t, b.KeyPressed(engine.KeySpace))

	*now = now.Add(termhost.DefaultKeyHold / 2)
	b.PollEvents()
	assert.True(t, b.KeyPressed(engine.KeyW), "still inside the hold window")

	*now = now.Add(termhost.DefaultKeyHold)
	b.PollEvents()
	assert.False(t, b.KeyPressed(engine.KeyW))
	assert.False(t, b.KeyPressed(engine.KeyUp))

	t.Run("repeat events extend the hold", func(t *testing.T) {
		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		b.PollEvents()
		*now = now.Add(termhost.DefaultKeyHold - time.Millisecond)
		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		b.PollEvents()
		*now = now.Add(termhost.DefaultKeyHold - time.Millisecond)
		b.PollEvents()
		assert.True(t, b.KeyPressed(engine.KeySpace))
	})
}

func TestInterrupt(t *testing.T) {
	b, screen, _ := newBackend(t)
	assert.False(t, b.Interrupted())

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	b.PollEvents()
	assert.True(t, b.Interrupted())
}

func TestLoadTexture(t *testing.T) {
	b, screen, _ := newBackend(t)

	path := filepath.Join(t.TempDir(), "ship.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	require.NoError(t, b.LoadTexture("ship", path))
	require.NoError(t, b.Draw([]engine.Drawable{{Image: "ship"}}))
	assert.Equal(t, 'S', cellAt(screen, 0, 0))

	err := b.LoadTexture("rock", filepath.Join(t.TempDir(), "rock.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSessionOnTerminal(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := termhost.New(termhost.WithScreen(screen), termhost.WithCellSize(1, 1))
	b.SetGlyph("ball", 'o')

	clock := ecs.NewManualClock(epoch)
	session, err := engine.NewSession(engine.DefaultConfig(),
		engine.WithRenderer(b),
		engine.WithInput(b),
		engine.WithClock(clock),
	)
	require.NoError(t, err)

	ball := session.Registry().Create()
	ecs.Add(session.Catalog(), ball, engine.Position{X: 3, Y: 2})
	ecs.Add(session.Catalog(), ball, engine.NewSprite("ball"))

	require.NoError(t, session.Startup())
	defer session.Shutdown()

	frames := 0
	require.NoError(t, session.RunLoop(func(ecs.Tick) {}, func() bool {
		frames++
		clock.Advance(20 * time.Millisecond)
		return frames == 2
	}))

	assert.Equal(t, 'o', cellAt(screen, 3, 2))
}
