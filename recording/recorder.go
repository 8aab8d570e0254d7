// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"errors"
	"fmt"

	"github.com/gogpu/sim/canvas"
)

// ErrRecorderClosed is returned by a Recorder used after Close.
var ErrRecorderClosed = errors.New("recording: recorder closed")

// Recorder is a canvas.Context that captures every call as a Command.
// Use Finish to obtain the Recording.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
	nextID   ShaderID
	live     map[ShaderID]struct{}
	closed   bool
}

var _ canvas.Context = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]Command, 0, 64),
		live:     make(map[ShaderID]struct{}),
	}
}

// shader is the Shader handed out by a Recorder.
type shader struct {
	id  ShaderID
	rec *Recorder
}

// Release implements canvas.Shader. Releasing twice records once.
func (s *shader) Release() {
	if _, ok := s.rec.live[s.id]; !ok {
		return
	}
	delete(s.rec.live, s.id)
	s.rec.commands = append(s.rec.commands, ReleaseShaderCommand{ID: s.id})
}

func (r *Recorder) record(cmd Command) error {
	if r.closed {
		return ErrRecorderClosed
	}
	r.commands = append(r.commands, cmd)
	return nil
}

func shaderID(sh canvas.Shader) ShaderID {
	if s, ok := sh.(*shader); ok {
		return s.id
	}
	return 0
}

// Apply implements canvas.Context.
func (r *Recorder) Apply(s canvas.State) error {
	return r.record(ApplyCommand{State: s})
}

// NewShader implements canvas.Context.
func (r *Recorder) NewShader(src canvas.ShaderSource) (canvas.Shader, error) {
	if src.Gradient == nil && src.Texture == nil {
		return nil, errors.New("recording: empty shader source")
	}
	r.nextID++
	id := r.nextID
	if err := r.record(NewShaderCommand{ID: id, Source: src}); err != nil {
		return nil, err
	}
	r.live[id] = struct{}{}
	return &shader{id: id, rec: r}, nil
}

// Clear implements canvas.Context.
func (r *Recorder) Clear(c canvas.Color) error {
	return r.record(ClearCommand{Color: c})
}

// Fill implements canvas.Context.
func (r *Recorder) Fill(p *canvas.Path, sh canvas.Shader) error {
	return r.record(FillCommand{Path: p, Shader: shaderID(sh)})
}

// Stroke implements canvas.Context.
func (r *Recorder) Stroke(p *canvas.Path, sh canvas.Shader) error {
	return r.record(StrokeCommand{Path: p, Shader: shaderID(sh)})
}

// DrawTexture implements canvas.Context.
func (r *Recorder) DrawTexture(t canvas.Texture, dst canvas.Rect) error {
	return r.record(DrawTextureCommand{Texture: t, Dst: dst})
}

// DrawText implements canvas.Context.
func (r *Recorder) DrawText(text string, at canvas.Point) error {
	return r.record(DrawTextCommand{Text: text, At: at})
}

// Flush implements canvas.Context.
func (r *Recorder) Flush() error {
	return r.record(FlushCommand{})
}

// Close implements canvas.Context. Further calls fail with ErrRecorderClosed.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool {
	return r.closed
}

// LiveShaders returns the number of shaders resolved and not yet released.
func (r *Recorder) LiveShaders() int {
	return len(r.live)
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Reset discards every recorded command and reopens the recorder.
// Shaders handed out before Reset become inert.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	clear(r.live)
	r.closed = false
}

// Finish returns a Recording of the commands captured so far.
// The recorder can keep recording; the Recording is not affected.
func (r *Recorder) Finish() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{commands: cmds}
}

// Recording is an immutable sequence of recorded commands.
type Recording struct {
	commands []Command
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Types returns the command type sequence.
func (r *Recording) Types() []CommandType {
	types := make([]CommandType, len(r.commands))
	for i, cmd := range r.commands {
		types[i] = cmd.Type()
	}
	return types
}

// Playback replays the recording onto ctx. Shaders are resolved and
// released on ctx as they were recorded; shaders still live at the end of
// the recording are released before Playback returns. Playback does not
// close ctx.
func (r *Recording) Playback(ctx canvas.Context) (err error) {
	shaders := make(map[ShaderID]canvas.Shader)
	defer func() {
		for _, sh := range shaders {
			sh.Release()
		}
	}()

	lookup := func(id ShaderID) (canvas.Shader, error) {
		if id == 0 {
			return nil, nil
		}
		sh, ok := shaders[id]
		if !ok {
			return nil, fmt.Errorf("recording: unknown shader %d", id)
		}
		return sh, nil
	}

	for i, cmd := range r.commands {
		switch c := cmd.(type) {
		case ApplyCommand:
			err = ctx.Apply(c.State)
		case NewShaderCommand:
			var sh canvas.Shader
			sh, err = ctx.NewShader(c.Source)
			if err == nil {
				shaders[c.ID] = sh
			}
		case ReleaseShaderCommand:
			if sh, ok := shaders[c.ID]; ok {
				sh.Release()
				delete(shaders, c.ID)
			}
		case ClearCommand:
			err = ctx.Clear(c.Color)
		case FillCommand:
			var sh canvas.Shader
			if sh, err = lookup(c.Shader); err == nil {
				err = ctx.Fill(c.Path, sh)
			}
		case StrokeCommand:
			var sh canvas.Shader
			if sh, err = lookup(c.Shader); err == nil {
				err = ctx.Stroke(c.Path, sh)
			}
		case DrawTextureCommand:
			err = ctx.DrawTexture(c.Texture, c.Dst)
		case DrawTextCommand:
			err = ctx.DrawText(c.Text, c.At)
		case FlushCommand:
			err = ctx.Flush()
		default:
			err = fmt.Errorf("unsupported command %s", cmd.Type())
		}
		if err != nil {
			return fmt.Errorf("recording: playback command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}
