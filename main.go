// FILE: main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jigardave8/8dSongs/audio"
	"github.com/jigardave8/8dSongs/core"
	"github.com/jigardave8/8dSongs/parameter"
)

const (
	redrawInterval = 100 * time.Millisecond
	speedStep      = 0.1
	roomStep       = 0.05
	seekStep       = 5 * time.Second
)

// App is the terminal player UI
type App struct {
	screen        tcell.Screen
	width, height int

	player  *audio.Player
	catalog *audio.Catalog // nil when playing a single source
	tracks  []string
	cursor  int

	status     string
	statusTime time.Time
}

// NewApp initializes the terminal and the playback session
func NewApp(source string) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &App{
		screen: screen,
		player: audio.NewPlayer(audio.LoadConfig()),
	}
	a.width, a.height = screen.Size()
	core.RegisterCleanup(func() {
		screen.Fini()
	})

	info, err := os.Stat(source)
	if err == nil && info.IsDir() {
		catalog, err := audio.NewCatalog(source)
		if err != nil {
			a.cleanup()
			return nil, err
		}
		a.catalog = catalog
		a.tracks = catalog.Tracks()
		if len(a.tracks) == 0 {
			a.cleanup()
			return nil, fmt.Errorf("no playable tracks in %q", source)
		}
	} else {
		if err := a.player.Load(source); err != nil {
			a.cleanup()
			return nil, err
		}
		a.player.Play()
	}

	return a, nil
}

// loadSelected loads the highlighted catalog track
func (a *App) loadSelected() {
	if a.catalog == nil || a.cursor >= len(a.tracks) {
		return
	}
	id := a.tracks[a.cursor]
	path, _ := a.catalog.Resolve(id)
	if err := a.player.Load(path); err != nil {
		a.setStatus(fmt.Sprintf("load failed: %v", err))
		return
	}
	a.player.Play()
	a.setStatus("playing " + id)
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusTime = time.Now()
}

func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyUp {
			a.moveCursor(-1)
			return true
		}
		if ev.Key() == tcell.KeyDown {
			a.moveCursor(1)
			return true
		}
		if ev.Key() == tcell.KeyEnter {
			a.loadSelected()
			return true
		}
		if ev.Key() == tcell.KeyRight {
			a.player.Seek(a.player.Position() + seekStep)
			return true
		}
		if ev.Key() == tcell.KeyLeft {
			a.player.Seek(a.player.Position() - seekStep)
			return true
		}

		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if a.player.IsPlaying() {
					a.player.Pause()
					a.setStatus("paused")
				} else {
					a.player.Play()
					a.setStatus("playing")
				}
			case 's':
				a.player.Stop()
				a.setStatus("stopped")
			case '+', '=':
				a.player.SetRotationSpeed(a.player.RotationSpeed() + speedStep)
				a.setStatus(fmt.Sprintf("speed %.1f", a.player.RotationSpeed()))
			case '-', '_':
				a.player.SetRotationSpeed(a.player.RotationSpeed() - speedStep)
				a.setStatus(fmt.Sprintf("speed %.1f", a.player.RotationSpeed()))
			case ']':
				a.player.SetRoomSize(a.player.RoomSize() + roomStep)
				a.setStatus(fmt.Sprintf("room %.2f", a.player.RoomSize()))
			case '[':
				a.player.SetRoomSize(a.player.RoomSize() - roomStep)
				a.setStatus(fmt.Sprintf("room %.2f", a.player.RoomSize()))
			case 'j':
				a.moveCursor(1)
			case 'k':
				a.moveCursor(-1)
			}
		}

	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
	}

	return true
}

func (a *App) moveCursor(delta int) {
	if a.catalog == nil {
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= len(a.tracks) {
		a.cursor = len(a.tracks) - 1
	}
}

func (a *App) draw() {
	a.screen.Clear()

	row := 0
	title := "8dSongs"
	if name := a.player.TrackName(); name != "" {
		title += "  ·  " + name
	}
	a.drawText(0, row, title, tcell.StyleDefault.Bold(true))
	row += 2

	// Transport line
	pos := a.player.Position()
	dur := a.player.Duration()
	state := "not loaded"
	switch {
	case a.player.IsPlaying():
		state = "playing"
	case a.player.IsLoaded():
		state = "paused"
	}
	a.drawText(0, row, fmt.Sprintf("[%s]  %s / %s", state, formatTime(pos), formatTime(dur)), tcell.StyleDefault)
	row++
	a.drawText(0, row, fmt.Sprintf("speed %.1f   room %.2f", a.player.RotationSpeed(), a.player.RoomSize()), tcell.StyleDefault)
	row += 2

	// Live orbit meters
	params := a.player.Params()
	a.drawMeter(0, row, "pan  ", (params.Pan+1)/2, tcell.ColorGreen)
	row++
	a.drawMeter(0, row, "gain ", params.Gain/parameter.BaseGain, tcell.ColorYellow)
	row++
	mixSpan := parameter.ReverbMixCeil - parameter.ReverbMixFloor
	a.drawMeter(0, row, "mix  ", (params.ReverbMix-parameter.ReverbMixFloor)/mixSpan, tcell.ColorBlue)
	row += 2

	// Catalog listing
	if a.catalog != nil {
		a.drawText(0, row, "tracks:", tcell.StyleDefault.Bold(true))
		row++
		for i, id := range a.tracks {
			if row >= a.height-2 {
				break
			}
			style := tcell.StyleDefault
			prefix := "  "
			if i == a.cursor {
				style = style.Reverse(true)
				prefix = "> "
			}
			a.drawText(0, row, prefix+id, style)
			row++
		}
	}

	// Status and key help
	if a.status != "" && time.Since(a.statusTime) < 3*time.Second {
		a.drawText(0, a.height-2, a.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	a.drawText(0, a.height-1, "space play/pause  s stop  ←/→ seek  +/- speed  [/] room  q quit",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	a.screen.Show()
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		if x+i >= a.width {
			break
		}
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *App) drawMeter(x, y int, label string, level float64, color tcell.Color) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	a.drawText(x, y, label, tcell.StyleDefault)

	barWidth := a.width - len(label) - 2
	if barWidth > 40 {
		barWidth = 40
	}
	filled := int(level * float64(barWidth))
	for i := 0; i < barWidth; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		a.screen.SetContent(x+len(label)+i, y, r, nil, tcell.StyleDefault.Foreground(color))
	}
}

func (a *App) run() {
	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *App) cleanup() {
	a.player.Close()
	a.screen.Fini()
}

func formatTime(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file|url|music-dir>\n", os.Args[0])
		os.Exit(2)
	}

	app, err := NewApp(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.cleanup()

	app.run()
}
