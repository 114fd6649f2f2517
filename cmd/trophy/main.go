// trophy renders ASCII-art 3D scenes straight to a terminal using raw ANSI
// truecolor escape sequences (§6).
//
// Controls while rendering:
//
//	W/A/S/D     - move forward/back/strafe using the camera's own basis
//	Space/Shift - move world-up/world-down
//	Arrows      - yaw/pitch
//	I/O         - increase/decrease movement speed
//	Return      - spawn a randomly colored light at the camera position
//	Escape      - quit
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/luccafm1/c3d-go/pkg/math3d"
	"github.com/luccafm1/c3d-go/pkg/render"
	"github.com/luccafm1/c3d-go/pkg/scene"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trophy",
		Short: "Render 3D scenes to a terminal as raw ANSI truecolor art",
	}
	root.AddCommand(renderCmd(), validateCmd())
	return root
}

func validateCmd() *cobra.Command {
	var assetRoot string
	cmd := &cobra.Command{
		Use:   "validate <scene.txt>",
		Short: "Load a scene file and report errors without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0], assetRoot)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			triCount := 0
			for _, m := range s.Meshes {
				triCount += m.Mesh.TriangleCount()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d mesh(es), %d triangle(s), %d light(s), %d startup behavior(s), %d continuous behavior(s)\n",
				len(s.Meshes), triCount, len(s.Lights), len(s.Startup), len(s.Continuous))
			return nil
		},
	}
	cmd.Flags().StringVar(&assetRoot, "assets", ".", "asset root containing models/")
	return cmd
}

func renderCmd() *cobra.Command {
	var assetRoot string
	var targetFPS int
	cmd := &cobra.Command{
		Use:   "render [scene.txt]",
		Short: "Render a scene file to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath := ""
			if len(args) == 1 {
				scenePath = args[0]
			} else {
				picked, err := pickScene(cmd.OutOrStdout(), assetRoot)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				scenePath = picked
			}

			s, err := scene.Load(scenePath, assetRoot)
			if err != nil {
				return fmt.Errorf("load scene: %w", err)
			}
			return runLoop(s, filepath.Base(scenePath), targetFPS)
		},
	}
	cmd.Flags().StringVar(&assetRoot, "assets", ".", "asset root containing models/")
	cmd.Flags().IntVar(&targetFPS, "fps", 30, "target frames per second")
	return cmd
}

// dampedAxis carries a key-held impulse through a critically-damped spring
// so releasing a movement key coasts to a stop instead of snapping to
// zero (harmonica.Spring driving velocity toward 0 each frame).
type dampedAxis struct {
	velocity, accel float64
	spring          harmonica.Spring
}

func newDampedAxis(fps int) dampedAxis {
	return dampedAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

func (a *dampedAxis) step(held bool, accelRate, dt float64) float64 {
	if held {
		a.velocity += accelRate * dt
	}
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return a.velocity
}

// inputState tracks the polled "is key pressed" predicate §6's input driver
// contract describes, plus the one-shot light-spawn trigger.
type inputState struct {
	w, a, s, d, space, shift bool
	left, right, up, down    bool
	speed                    float64
	spawnLight               bool

	forward, strafe, vertical dampedAxis
}

func runLoop(sc *scene.Scene, sceneName string, targetFPS int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	sc.Camera.SetAspectRatio(float64(width) / float64(height*2))

	input := &inputState{
		speed:    0.1,
		forward:  newDampedAxis(targetFPS),
		strafe:   newDampedAxis(targetFPS),
		vertical: newDampedAxis(targetFPS),
	}
	overlay := newHUD(os.Stdout, width, height)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				overlay.resize(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					input.w = true
				case ev.MatchString("a"):
					input.a = true
				case ev.MatchString("s"):
					input.s = true
				case ev.MatchString("d"):
					input.d = true
				case ev.MatchString("space"):
					input.space = true
				case ev.MatchString("shift"):
					input.shift = true
				case ev.MatchString("left"):
					input.left = true
				case ev.MatchString("right"):
					input.right = true
				case ev.MatchString("up"):
					input.up = true
				case ev.MatchString("down"):
					input.down = true
				case ev.MatchString("i"):
					input.speed += 0.1
				case ev.MatchString("o"):
					input.speed = math.Max(0, input.speed-0.1)
				case ev.MatchString("enter"):
					input.spawnLight = true
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"):
					input.w = false
				case ev.MatchString("a"):
					input.a = false
				case ev.MatchString("s"):
					input.s = false
				case ev.MatchString("d"):
					input.d = false
				case ev.MatchString("space"):
					input.space = false
				case ev.MatchString("shift"):
					input.shift = false
				case ev.MatchString("left"):
					input.left = false
				case ev.MatchString("right"):
					input.right = false
				case ev.MatchString("up"):
					input.up = false
				case ev.MatchString("down"):
					input.down = false
				}

			case uv.MouseClickEvent:
				input.spawnLight = true
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(targetFPS)
	rast := render.NewRasterizer(sc.Camera, sc.Lights, sc.Background)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}
		if !sc.Running {
			cleanup()
			return nil
		}

		frameStart := time.Now()
		dt := frameStart.Sub(lastFrame).Seconds()
		lastFrame = frameStart

		applyInput(sc, input, dt)
		sc.Step()

		rast.Lights = sc.Lights
		rast.Background = sc.Background

		f := render.NewFrame(width, height)
		frustum := render.NewFrustumFromMatrix(sc.Camera.ViewProjectionMatrix())
		triCount := 0
		for _, nm := range sc.Meshes {
			nm.Mesh.CalculateBounds()
			box := render.NewAABB(nm.Mesh.BoundsMin, nm.Mesh.BoundsMax)
			if !frustum.IntersectAABB(box) {
				continue
			}
			rast.DrawMesh(f, nm.Mesh, math3d.Identity())
			triCount += nm.Mesh.TriangleCount()
		}

		sc.Advance()

		bg := sc.Background
		if err := render.Compose(os.Stdout, f, render.BackgroundColor{
			R: byte(bg.X * 255), G: byte(bg.Y * 255), B: byte(bg.Z * 255),
		}); err != nil {
			cleanup()
			return fmt.Errorf("compose frame: %w", err)
		}

		fps := 0.0
		if dt > 0 {
			fps = 1 / dt
		}
		overlay.draw(sceneName, fps, triCount)

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// applyInput moves the camera per §6's key-binding table: W/A/S/D use the
// camera's own forward/right basis, arrows yaw/pitch, I/O adjust speed.
// Forward/strafe/vertical motion is driven through a damped spring so a
// held key accelerates and a released key coasts to rest rather than
// snapping to zero (see dampedAxis).
func applyInput(sc *scene.Scene, in *inputState, dt float64) {
	cam := sc.Camera

	accel := in.speed * 20
	forwardHeld := in.w || in.s
	forwardSign := 1.0
	if in.s {
		forwardSign = -1
	}
	strafeHeld := in.a || in.d
	strafeSign := 1.0
	if in.a {
		strafeSign = -1
	}
	verticalHeld := in.space || in.shift
	verticalSign := 1.0
	if in.shift {
		verticalSign = -1
	}

	fv := in.forward.step(forwardHeld, forwardSign*accel, dt)
	sv := in.strafe.step(strafeHeld, strafeSign*accel, dt)
	vv := in.vertical.step(verticalHeld, verticalSign*accel, dt)

	cam.MoveForward(fv * dt)
	cam.MoveRight(sv * dt)
	cam.MoveUp(vv * dt)

	if in.left {
		cam.Rotate(0, -0.03, 0)
	}
	if in.right {
		cam.Rotate(0, 0.03, 0)
	}
	if in.up {
		cam.Rotate(-0.03, 0, 0)
	}
	if in.down {
		cam.Rotate(0.03, 0, 0)
	}

	if in.spawnLight {
		in.spawnLight = false
		c := colorful.FastHappyColor()
		sc.Lights = append(sc.Lights, render.Light{
			Position:   cam.Position,
			Color:      math3d.V3(c.R, c.G, c.B),
			Brightness: 1,
			Radius:     20,
		})
	}
}
