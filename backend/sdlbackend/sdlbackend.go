// This file is part of Chronostim.
//
// Chronostim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chronostim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chronostim.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlbackend implements the backend.Backend and backend.AudioSink
// interfaces with SDL2 and OpenGL 2.1.
//
// A blocking swap is implemented by swapping the buffers, drawing a single
// transparent point and then waiting for the GL pipeline to finish. The draw
// cannot complete until the swap has happened so the call returns only once
// the new frame has been committed to the screen.
//
// SDL requires that all calls are made from the main thread. The Backend
// should be created and used from the same goroutine, which is locked to its
// OS thread by NewBackend().
package sdlbackend

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/prefs"
	"github.com/chronostim/chronostim/timing"
)

const windowTitle = "Chronostim"

// Backend is an SDL window with an OpenGL context.
type Backend struct {
	env *environment.Environment
	clk *timing.SystemClock

	window *sdl.Window
	glctx  sdl.GLContext
	hasGL  bool
	mode   sdl.DisplayMode

	width  int
	height int

	joysticks []*sdl.Joystick

	// the time of the previous call to PollEvents()
	lastPoll int64

	audio audioQueue
}

// NewBackend is the preferred method of initialisation for the Backend type.
// The size and fullscreen state of the window are taken from the video
// preferences. A width or height of zero means the size of the desktop.
func NewBackend(env *environment.Environment) (*Backend, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_JOYSTICK)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(env, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	b := &Backend{
		env: env,
		clk: timing.NewSystemClock(),
	}
	b.audio.env = env

	b.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	logger.Logf(env, "sdl", "refresh rate: %dHz", b.mode.RefreshRate)

	b.width = env.Prefs.Width.Int()
	if b.width <= 0 {
		b.width = int(b.mode.W)
	}
	b.height = env.Prefs.Height.Int()
	if b.height <= 0 {
		b.height = int(b.mode.H)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN)
	if env.Prefs.Fullscreen.Bool() {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	b.window, err = sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(b.width), int32(b.height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	b.glctx, err = b.window.GLCreateContext()
	if err != nil {
		_ = b.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	b.hasGL = true
	err = b.window.GLMakeCurrent(b.glctx)
	if err != nil {
		_ = b.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = gl.Init()
	if err != nil {
		_ = b.Destroy()
		return nil, fmt.Errorf("gl: %w", err)
	}
	logger.Logf(env, "gl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(env, "gl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(env, "gl", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	b.setSwapInterval()
	env.Prefs.SyncToVBL.SetHookPost(func(_ prefs.Value) error {
		b.setSwapInterval()
		return nil
	})

	b.setupProjection()

	_, err = sdl.ShowCursor(sdl.DISABLE)
	if err != nil {
		logger.Log(env, "sdl", err)
	}

	for i := range sdl.NumJoysticks() {
		joy := sdl.JoystickOpen(i)
		if joy == nil {
			continue
		}
		logger.Logf(env, "sdl", "joystick: %s", joy.Name())
		b.joysticks = append(b.joysticks, joy)
	}
	if len(b.joysticks) == 0 {
		logger.Log(env, "sdl", "no joysticks found")
	}

	b.lastPoll = b.clk.Now()

	return b, nil
}

// list of swap interval values expected by SDL.GLSetSwapInterval()
const (
	syncImmediateUpdate     = 0
	syncWithVerticalRetrace = 1
)

func (b *Backend) setSwapInterval() {
	i := syncImmediateUpdate
	if b.env.Prefs.SyncToVBL.Bool() {
		i = syncWithVerticalRetrace
	}
	err := sdl.GLSetSwapInterval(i)
	if err != nil {
		logger.Logf(b.env, "sdl", "GLSetSwapInterval(%d): %s", i, err.Error())
	}
}

// pixel coordinates with the origin at the top left of the window
func (b *Backend) setupProjection() {
	gl.Viewport(0, 0, int32(b.width), int32(b.height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(b.width), float64(b.height), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// Now implements the timing.WallClock interface.
func (b *Backend) Now() int64 {
	return b.clk.Now()
}

// RefreshRate returns the refresh rate of the display in Hz.
func (b *Backend) RefreshRate() int {
	return int(b.mode.RefreshRate)
}

// Destroy implements the backend.Backend interface.
func (b *Backend) Destroy() error {
	b.audio.close()

	for _, joy := range b.joysticks {
		joy.Close()
	}
	b.joysticks = nil

	if b.hasGL {
		sdl.GLDeleteContext(b.glctx)
		b.hasGL = false
	}

	if b.window != nil {
		err := b.window.Destroy()
		if err != nil {
			return err
		}
		b.window = nil
	}
	sdl.Quit()

	return nil
}
