package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/app"
	"github.com/zhubert/scholar/internal/assistant"
	"github.com/zhubert/scholar/internal/clipboard"
	"github.com/zhubert/scholar/internal/config"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/ui"
	"github.com/zhubert/scholar/internal/ui/modals"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// ThinkingTime is how long the recording shows the searching indicator
	// before a reply lands (default: 1.5s)
	ThinkingTime time.Duration

	// ReplyTimeout bounds the real time spent waiting for a reply (default: 5s)
	ReplyTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		ThinkingTime:     1500 * time.Millisecond,
		ReplyTimeout:     5 * time.Second,
	}
}

// settleTime is how long non-reply commands get to produce a message.
const settleTime = 20 * time.Millisecond

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config    ExecutorConfig
	model     *app.Model
	store     *conversation.Store
	responder *scriptedResponder
	frames    []Frame
	clock     time.Time // advances by each frame's delay

	currentAnnotation string
}

// scriptedResponder answers from a queue, falling back to the placeholder
// assistant when the script runs dry. Each answer is held until the
// executor releases it, so frames can show the question being searched.
type scriptedResponder struct {
	mu       sync.Mutex
	answers  []conversation.Answer
	fallback conversation.Responder

	received chan struct{}
	release  chan struct{}
}

func newScriptedResponder() *scriptedResponder {
	return &scriptedResponder{
		fallback: assistant.NewPlaceholder(),
		received: make(chan struct{}, 1),
		release:  make(chan struct{}, 1),
	}
}

func (r *scriptedResponder) Queue(a conversation.Answer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, a)
}

func (r *scriptedResponder) Submit(ctx context.Context, q conversation.Question) (conversation.Answer, error) {
	select {
	case r.received <- struct{}{}:
	default:
	}
	select {
	case <-r.release:
	case <-ctx.Done():
		return conversation.Answer{}, ctx.Err()
	}

	r.mu.Lock()
	if len(r.answers) == 0 {
		r.mu.Unlock()
		return r.fallback.Submit(ctx, q)
	}
	a := r.answers[0]
	r.answers = r.answers[1:]
	r.mu.Unlock()
	return a, nil
}

// demoClipboard discards copied text so recordings never touch the real
// clipboard.
type demoClipboard struct{}

func (demoClipboard) Init() error             { return nil }
func (demoClipboard) WriteText(string) error { return nil }

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config:    cfg,
		responder: newScriptedResponder(),
		frames:    []Frame{},
	}
}

// Cleanup releases the model and restores the system clipboard.
func (e *Executor) Cleanup() {
	if e.model != nil {
		e.model.Close()
	}
	clipboard.ResetBackend()
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	defer e.Cleanup()

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup initializes the model for the scenario.
func (e *Executor) setup(scenario *Scenario) error {
	clipboard.SetBackend(demoClipboard{})

	cfg := &config.Config{
		Theme:            string(ui.DefaultTheme),
		SidebarCollapsed: scenario.Setup.SidebarCollapsed,
	}

	e.store = conversation.NewStore(
		scenario.Setup.Conversations,
		e.responder,
		conversation.WithActive(scenario.Setup.ActiveID),
	)
	e.model = app.New(cfg, e.store, "demo")
	e.clock = time.Now()
	e.model.SetClock(func() time.Time { return e.clock })
	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})

	logger.ComponentLogger("demo").Info("scenario ready", "name", scenario.Name,
		"conversations", len(scenario.Setup.Conversations))
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		// While a reply is pending, animate the searching indicator
		if e.model.HasPendingReply() && step.Duration >= 300*time.Millisecond {
			e.captureAnimatedFrames(index, step.Duration, 300*time.Millisecond)
		} else {
			e.captureFrame(index, step.Duration)
		}

	case StepKey:
		if err := e.sendKey(index, step.Key); err != nil {
			return err
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.update(tea.KeyPressMsg{Code: ch, Text: string(ch)})
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepAnswer:
		e.responder.Queue(step.Answer)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		if e.model.HasPendingReply() {
			e.sendTickMessages()
		}
		e.captureFrame(index, 0)

	case StepFlash:
		e.model.ShowFlash(step.FlashText, step.FlashType)
		e.captureFrame(index, 100*time.Millisecond)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// sendKey sends a key press and runs whatever it started. A key that sends
// a question shows the searching indicator for ThinkingTime and then waits
// for the reply.
func (e *Executor) sendKey(index int, key string) error {
	cmd := e.update(keyPress(key))
	if cmd == nil {
		return nil
	}

	if !e.model.HasPendingReply() {
		e.collect(e.start(cmd), settleTime, nil)
		return nil
	}

	d := e.start(cmd)
	select {
	case <-e.responder.received:
	case <-time.After(e.config.ReplyTimeout):
		d.stop()
		return fmt.Errorf("question not submitted within %v", e.config.ReplyTimeout)
	}
	// The user message is in the store; show it while the reply is held
	e.update(app.StoreChangedMsg{Snapshot: e.store.Snapshot()})
	e.captureAnimatedFrames(index, e.config.ThinkingTime, 300*time.Millisecond)
	e.responder.release <- struct{}{}

	got := false
	e.collect(d, e.config.ReplyTimeout, func(msg tea.Msg) bool {
		_, got = msg.(app.ReplyMsg)
		return got
	})
	if !got {
		return fmt.Errorf("no reply within %v", e.config.ReplyTimeout)
	}
	e.captureFrame(index, 200*time.Millisecond)
	return nil
}

// dispatch is a running command tree.
type dispatch struct {
	out  chan tea.Msg
	done chan struct{}
	once sync.Once
}

func (d *dispatch) stop() {
	d.once.Do(func() { close(d.done) })
}

// start runs cmd, including everything it batches, on background
// goroutines.
func (e *Executor) start(cmd tea.Cmd) *dispatch {
	d := &dispatch{out: make(chan tea.Msg), done: make(chan struct{})}

	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			select {
			case d.out <- msg:
			case <-d.done:
			}
		}()
	}
	run(cmd)
	return d
}

// collect feeds the messages the app handles itself back into the model.
// Ticks are skipped; the executor advances animations with
// sendTickMessages. collect stops d when until reports true or timeout
// passes.
func (e *Executor) collect(d *dispatch, timeout time.Duration, until func(tea.Msg) bool) {
	defer d.stop()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-d.out:
			switch msg.(type) {
			case app.ReplyMsg, modals.HelpShortcutTriggeredMsg:
				if next := e.update(msg); next != nil {
					// Follow-on work from a shortcut, e.g. help -> new chat
					e.collect(e.start(next), settleTime, nil)
				}
			}
			if until != nil && until(msg) {
				return
			}
		case <-deadline:
			return
		}
	}
}

// update sends msg to the model and returns its command.
func (e *Executor) update(msg tea.Msg) tea.Cmd {
	result, cmd := e.model.Update(msg)
	e.model = result.(*app.Model)
	return cmd
}

// advance moves the recording clock forward and lets the footer expire
// its flash. Flash ticks are never delivered by collect, so this is the
// only place they reach the model.
func (e *Executor) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
	if e.model.HasFlash() {
		e.update(ui.FlashTickMsg(e.clock))
	}
}

// captureFrame captures the current view as a frame shown after delay.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	e.advance(delay)
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// captureAnimatedFrames captures several frames, advancing the stopwatch
// between them.
func (e *Executor) captureAnimatedFrames(stepIndex int, totalDuration time.Duration, frameInterval time.Duration) {
	if frameInterval <= 0 {
		frameInterval = 300 * time.Millisecond
	}

	numFrames := max(1, int(totalDuration/frameInterval))
	delayPerFrame := totalDuration / time.Duration(numFrames)

	for range numFrames {
		e.sendTickMessages()
		e.captureFrame(stepIndex, delayPerFrame)
	}
}

// sendTickMessages advances the searching indicator.
func (e *Executor) sendTickMessages() {
	e.update(ui.StopwatchTickMsg(time.Now()))
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Duplicated from the app tests, which cannot be imported.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "shift+enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "ctrl+b":
		return tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+e":
		return tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case "ctrl+u":
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case "ctrl+y":
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
