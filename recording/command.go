// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import "github.com/gogpu/sim/canvas"

// CommandType identifies the type of a command.
// Each command type corresponds to one canvas.Context call.
type CommandType uint8

const (
	// State commands
	CmdApply         CommandType = iota // Apply a graphics state
	CmdNewShader                        // Resolve a shader
	CmdReleaseShader                    // Release a shader

	// Drawing commands
	CmdClear       // Clear the target
	CmdFill        // Fill a path
	CmdStroke      // Stroke a path
	CmdDrawTexture // Draw a texture
	CmdDrawText    // Draw text
	CmdFlush       // Flush pending output
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdApply:         "Apply",
	CmdNewShader:     "NewShader",
	CmdReleaseShader: "ReleaseShader",
	CmdClear:         "Clear",
	CmdFill:          "Fill",
	CmdStroke:        "Stroke",
	CmdDrawTexture:   "DrawTexture",
	CmdDrawText:      "DrawText",
	CmdFlush:         "Flush",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ShaderID identifies a shader within one recording. IDs start at 1;
// the zero ID means "no shader" (a solid color).
type ShaderID uint32

// ApplyCommand records a state becoming effective.
type ApplyCommand struct {
	State canvas.State
}

// Type implements Command.
func (ApplyCommand) Type() CommandType { return CmdApply }

// NewShaderCommand records the resolution of a shader.
type NewShaderCommand struct {
	ID     ShaderID
	Source canvas.ShaderSource
}

// Type implements Command.
func (NewShaderCommand) Type() CommandType { return CmdNewShader }

// ReleaseShaderCommand records the release of a shader.
type ReleaseShaderCommand struct {
	ID ShaderID
}

// Type implements Command.
func (ReleaseShaderCommand) Type() CommandType { return CmdReleaseShader }

// ClearCommand records a clear.
type ClearCommand struct {
	Color canvas.Color
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// FillCommand records a path fill.
type FillCommand struct {
	Path   *canvas.Path
	Shader ShaderID
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand records a path stroke.
type StrokeCommand struct {
	Path   *canvas.Path
	Shader ShaderID
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// DrawTextureCommand records a texture blit.
type DrawTextureCommand struct {
	Texture canvas.Texture
	Dst     canvas.Rect
}

// Type implements Command.
func (DrawTextureCommand) Type() CommandType { return CmdDrawTexture }

// DrawTextCommand records a text draw.
type DrawTextCommand struct {
	Text string
	At   canvas.Point
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// FlushCommand records a flush.
type FlushCommand struct{}

// Type implements Command.
func (FlushCommand) Type() CommandType { return CmdFlush }
