package gungale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptStep holds a fixed input state for a run of frames.
type ScriptStep struct {
	Frames  int        `yaml:"frames"`
	Strafe  int8       `yaml:"strafe"`
	Forward int8       `yaml:"forward"`
	Jump    bool       `yaml:"jump"` // held; the edge is derived by Input
	Crouch  bool       `yaml:"crouch"`
	Pointer [2]float64 `yaml:"pointer"` // per-frame pointer motion
}

// InputScript is a deterministic input sequence at a fixed frame time.
type InputScript struct {
	Delta float64      `yaml:"delta"`
	Steps []ScriptStep `yaml:"steps"`
}

func (s *InputScript) TotalFrames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// LoadInputScript reads a YAML input script.
func LoadInputScript(path string) (*InputScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	return ParseInputScript(data)
}

func ParseInputScript(data []byte) (*InputScript, error) {
	var script InputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if script.Delta <= 0 {
		script.Delta = float64(FallbackDelta)
	}
	for i, step := range script.Steps {
		if step.Frames < 0 {
			return nil, fmt.Errorf("input script step %d: negative frame count %d", i, step.Frames)
		}
		if step.Strafe < -1 || step.Strafe > 1 || step.Forward < -1 || step.Forward > 1 {
			return nil, fmt.Errorf("input script step %d: axes must be -1, 0 or 1", i)
		}
	}
	return &script, nil
}

// ScriptedHost replays an InputScript. Each PollEvents call advances one frame.
type ScriptedHost struct {
	script  *InputScript
	polled  int
	step    int
	inStep  int
	cursorX float64
	cursorY float64
	width   int
	height  int
}

func NewScriptedHost(script *InputScript) *ScriptedHost {
	return &ScriptedHost{script: script, step: -1, width: 1200, height: 1000}
}

func (h *ScriptedHost) current() *ScriptStep {
	if h.step < 0 || h.step >= len(h.script.Steps) {
		return nil
	}
	return &h.script.Steps[h.step]
}

func (h *ScriptedHost) Now() float64 {
	return float64(h.polled) * h.script.Delta
}

// FixedDelta is the script's frame time.
func (h *ScriptedHost) FixedDelta() float64 {
	return h.script.Delta
}

func (h *ScriptedHost) PollEvents() {
	h.polled++
	if h.step >= len(h.script.Steps) {
		return
	}

	if h.step < 0 || h.inStep >= h.script.Steps[h.step].Frames {
		h.step++
		h.inStep = 0
		for h.step < len(h.script.Steps) && h.script.Steps[h.step].Frames == 0 {
			h.step++
		}
	}
	h.inStep++

	if st := h.current(); st != nil {
		h.cursorX += st.Pointer[0]
		h.cursorY += st.Pointer[1]
	}
}

func (h *ScriptedHost) CursorPos() (float64, float64) {
	return h.cursorX, h.cursorY
}

func (h *ScriptedHost) KeyDown(k Key) bool {
	st := h.current()
	if st == nil {
		return false
	}
	switch k {
	case KeyW:
		return st.Forward > 0
	case KeyS:
		return st.Forward < 0
	case KeyD:
		return st.Strafe > 0
	case KeyA:
		return st.Strafe < 0
	case KeySpace:
		return st.Jump
	case KeyControl:
		return st.Crouch
	}
	return false
}

func (h *ScriptedHost) ShouldClose() bool {
	return h.polled >= h.script.TotalFrames()
}

func (h *ScriptedHost) FramebufferSize() (int, int) {
	return h.width, h.height
}
