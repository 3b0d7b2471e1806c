package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/eval"
	"snakeevo/internal/logging"
	"snakeevo/internal/nn"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults if empty)")
	championPath := flag.String("champion", "artifacts/champion_final.json", "path to champion JSON")
	replayPath := flag.String("replay", "", "play back a recorded replay instead of a champion")
	manual := flag.Bool("manual", false, "steer with w/a/s/d + Enter instead of the network")
	seed := flag.Int64("seed", 12345, "random seed for food placement")
	delay := flag.Int("delay", 100, "delay between frames in milliseconds")
	noDisplay := flag.Bool("no-display", false, "run without display (just print stats)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	var (
		snake  *env.Snake
		net    *nn.Network
		replay *env.Replay
	)
	switch {
	case *replayPath != "":
		r, err := env.LoadReplay(*replayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
			os.Exit(1)
		}
		replay = r
		snake = r.Playback()
		fmt.Printf("Replay seed %d, %d ticks recorded\n", r.Seed, len(r.Turns))
	case *manual:
		snake = env.NewSeededSnake(cfg.Params(), *seed)
		fmt.Println("Manual mode: w/a/s/d move, p pause, r toggle display, +/- speed, q end episode (press Enter after each key)")
	default:
		champion, n, err := logging.LoadChampion(*championPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
			os.Exit(1)
		}
		net = n
		params := cfg.Params()
		if champion.Params.Columns > 0 && champion.Params.Rows > 0 {
			params = champion.Params
		}
		snake = env.NewSeededSnake(params, *seed)
		fmt.Printf("Loaded champion from gen %d (fitness=%.1f, layers=%v, grid %dx%d)\n",
			champion.Generation, champion.Fitness, champion.Layers, params.Columns, params.Rows)
	}
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	display := NewDisplay(snake.Grid().Columns, snake.Grid().Rows)
	display.Enabled = !*noDisplay
	display.Delay = time.Duration(*delay) * time.Millisecond
	if *manual {
		display.Listen(readCommands(os.Stdin))
	}

	tick := 0
	for !snake.GameOver {
		if !display.HandleInput(snake) {
			continue
		}

		turn := env.TurnNone
		switch {
		case replay != nil:
			if !replay.PlaybackStep(snake, tick) {
				snake.Abort()
			}
		case net != nil:
			t, err := eval.Step(snake, net)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			turn = t
		default:
			snake.Update()
		}
		tick++

		display.Render(snake, turn)
	}

	display.Enabled = true
	display.Render(snake, env.TurnNone)

	stats := snake.Stats()
	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Printf("  Game Over! Death: %s\n", stats.Death)
	fmt.Printf("  Score: %.1f, Ticks: %d, Food: %d, Length: %d\n", stats.Score, stats.Ticks, stats.Food, stats.Length)
	fmt.Println("═══════════════════════════════════")
}

// readCommands forwards stdin bytes so the game loop never blocks on input
func readCommands(f *os.File) <-chan byte {
	ch := make(chan byte, 16)
	go func() {
		defer close(ch)
		r := bufio.NewReader(f)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			ch <- b
		}
	}()
	return ch
}

// Display handles terminal rendering and operator controls
type Display struct {
	Enabled bool
	Delay   time.Duration
	Paused  bool

	width    int
	height   int
	commands <-chan byte
}

// NewDisplay creates a display for a width x height grid
func NewDisplay(width, height int) *Display {
	return &Display{Enabled: true, width: width, height: height}
}

// Listen sets the command source for HandleInput
func (d *Display) Listen(commands <-chan byte) {
	d.commands = commands
}

// HandleInput drains pending commands. It reports false while paused.
func (d *Display) HandleInput(snake *env.Snake) bool {
	for d.commands != nil {
		select {
		case b, ok := <-d.commands:
			if !ok {
				// no input left to unpause with
				d.commands = nil
				d.Paused = false
				return true
			}
			d.apply(b, snake)
		default:
			if d.Paused {
				time.Sleep(50 * time.Millisecond)
			}
			return !d.Paused
		}
	}
	return !d.Paused
}

func (d *Display) apply(b byte, snake *env.Snake) {
	switch b {
	case 'w':
		snake.Move(env.DirUp)
	case 's':
		snake.Move(env.DirDown)
	case 'a':
		snake.Move(env.DirLeft)
	case 'd':
		snake.Move(env.DirRight)
	case 'p':
		d.Paused = !d.Paused
	case 'r':
		d.Enabled = !d.Enabled
	case '+':
		d.Delay /= 2
	case '-':
		d.Delay = d.Delay*2 + time.Millisecond
	case 'q':
		snake.Abort()
	}
}

// Render draws the snake's scene to the terminal and throttles the loop
func (d *Display) Render(snake *env.Snake, turn env.Turn) {
	if !d.Enabled {
		return
	}
	clearScreen()
	fmt.Print(d.Frame(snake, turn))
	time.Sleep(d.Delay)
}

// Frame returns the text of one frame. Cells outside the display are skipped.
func (d *Display) Frame(snake *env.Snake, turn env.Turn) string {
	// Cell-sized scene: rects are in grid coordinates
	scene := snake.Scene(1)

	grid := make([][]rune, d.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat("·", d.width))
	}
	set := func(x, y int, r rune) {
		if x >= 0 && x < d.width && y >= 0 && y < d.height {
			grid[y][x] = r
		}
	}
	for _, r := range scene.Body {
		for y := r.Top; y < r.Top+r.Height; y++ {
			for x := r.Left; x < r.Left+r.Width; x++ {
				set(x, y, '█')
			}
		}
	}
	head := snake.Head()
	set(head.X, head.Y, directionHead(snake.Heading()))
	set(scene.Food.Left, scene.Food.Top, '●')

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", d.width) + "┐\n")
	for _, row := range grid {
		b.WriteString("│" + string(row) + "│\n")
	}
	b.WriteString("└" + strings.Repeat("─", d.width) + "┘\n")

	fmt.Fprintf(&b, "  Tick: %4d | Score: %7.1f | Length: %3d | Turn: %s\n",
		snake.Ticks, scene.Score, snake.Length(), turn)
	if scene.GameOver {
		fmt.Fprintf(&b, "  DEAD: %s\n", snake.Death)
	}
	return b.String()
}

func directionHead(dir env.Direction) rune {
	switch dir {
	case env.DirUp:
		return '▲'
	case env.DirRight:
		return '▶'
	case env.DirDown:
		return '▼'
	case env.DirLeft:
		return '◀'
	}
	return 'O'
}

func clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}
