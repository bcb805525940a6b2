package termline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	// ErrAborted is the default rejection reason passed to pending reads
	// when AbortRead is called without one.
	ErrAborted = errors.New("read aborted")
	// ErrEOF is the rejection reason when Ctrl+D is pressed on an empty
	// buffer.
	ErrEOF = errors.New("EOF")
)

const (
	defaultHistorySize            = 10
	defaultMaxAutocompleteEntries = 100
	defaultContinuationPrompt     = "> "
	wideListPadding               = 2

	escByte = '\x1b'
)

// Runs of carriage returns and line feeds, collapsed during output
// normalization and paste expansion.
var lineBreakRE = regexp.MustCompile(`[\r\n]+`)

// ReadResult carries the outcome of a pending Read or ReadChar: the
// resolved text, or the rejection reason in Err.
type ReadResult struct {
	Line string
	Err  error
}

// activeRead is an in-flight full-line read request.
type activeRead struct {
	prompt       string
	continuation string
	resolve      func(string)
	reject       func(error)
}

// activeCharRead is an in-flight single-chunk read request. When present
// it intercepts the next incoming data chunk before any line editing runs.
type activeCharRead struct {
	prompt  string
	resolve func(string)
	reject  func(error)
}

// Engine is a bash-style line editor over a terminal Surface.
//
// The engine is purely reactive: it never reads from the terminal itself.
// The owner of the surface's event source calls HandleData for raw input
// chunks and HandleResize for dimension changes (TTYSurface.Run does this
// wiring for real terminals). The engine keeps a logical input buffer and
// cursor offset and keeps the physical, soft-wrapped, prompt-prefixed
// display in sync using only relative cursor-movement sequences.
//
// All exported methods hold an internal mutex, so callers may invoke
// Read, AbortRead and the print helpers from a different goroutine than
// the one delivering HandleData/HandleResize events.
type Engine struct {
	mu sync.Mutex

	surface  Surface
	keyMap   *KeyMap
	colors   *ColorScheme
	history  *History
	handlers []registeredHandler
	warnOut  io.Writer

	maxAutocompleteEntries int
	continuation           string

	input              []rune
	cursor             int
	termCols, termRows int

	active     bool
	activeRead *activeRead
	activeChar *activeCharRead
	nextToken  HandlerToken
}

// HandlerToken identifies a registered autocomplete handler so it can be
// removed later. Go functions have no usable identity (two closures built
// from the same literal share a code pointer), so registration hands out
// tokens instead.
type HandlerToken int

type registeredHandler struct {
	token   HandlerToken
	handler AutocompleteHandler
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistorySize sets the history ring capacity (default 10).
func WithHistorySize(size int) Option {
	return func(e *Engine) { e.history = NewHistory(size) }
}

// WithMaxAutocompleteEntries sets how many candidates may be listed
// without asking for confirmation first (default 100).
func WithMaxAutocompleteEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAutocompleteEntries = n
		}
	}
}

// WithContinuationPrompt sets the prompt prefixing continuation lines of
// incomplete input (default "> ").
func WithContinuationPrompt(prompt string) Option {
	return func(e *Engine) { e.continuation = prompt }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km *KeyMap) Option {
	return func(e *Engine) {
		if km != nil {
			e.keyMap = km
		}
	}
}

// WithColorScheme colors candidate listings and notices. The default is
// uncolored output.
func WithColorScheme(scheme *ColorScheme) Option {
	return func(e *Engine) { e.colors = scheme }
}

// WithWarningWriter redirects autocomplete-handler failure warnings
// (default os.Stderr).
func WithWarningWriter(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.warnOut = w
		}
	}
}

// New creates an engine attached to surface. The surface's dimensions are
// cached now and refreshed only through HandleResize.
func New(surface Surface, options ...Option) *Engine {
	e := &Engine{
		surface:                surface,
		keyMap:                 NewDefaultKeyMap(),
		history:                NewHistory(defaultHistorySize),
		warnOut:                os.Stderr,
		maxAutocompleteEntries: defaultMaxAutocompleteEntries,
		continuation:           defaultContinuationPrompt,
	}
	for _, option := range options {
		option(e)
	}

	cols, rows := surface.Size()
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	e.termCols, e.termRows = cols, rows
	return e
}

// History exposes the engine's history ring, e.g. to preload entries
// before the event pump starts. The ring itself is unsynchronized; mutate
// it only while no input events can arrive.
func (e *Engine) History() *History {
	return e.history
}

// Read writes prompt and starts a line read using the configured
// continuation prompt. The returned channel receives exactly one
// ReadResult: the submitted line, or the rejection reason from AbortRead.
// At most one line read may be active at a time; starting another while
// one is pending is a caller error.
func (e *Engine) Read(prompt string) <-chan ReadResult {
	return e.ReadWithPrompts(prompt, e.continuation)
}

// ReadWithPrompts is Read with an explicit continuation prompt.
func (e *Engine) ReadWithPrompts(prompt, continuation string) <-chan ReadResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan ReadResult, 1)
	e.readInto(prompt, continuation,
		func(line string) { ch <- ReadResult{Line: line} },
		func(err error) { ch <- ReadResult{Err: err} },
	)
	return ch
}

func (e *Engine) readInto(prompt, continuation string, resolve func(string), reject func(error)) {
	e.write(prompt)
	e.activeRead = &activeRead{
		prompt:       prompt,
		continuation: continuation,
		resolve:      resolve,
		reject:       reject,
	}
	e.input = nil
	e.cursor = 0
	e.active = true
}

// ReadChar writes prompt and resolves with exactly the next raw data
// chunk. A pending char read takes priority over a line read for the next
// chunk, then clears itself. At most one may be active at a time.
func (e *Engine) ReadChar(prompt string) <-chan ReadResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan ReadResult, 1)
	e.readCharInto(prompt,
		func(chunk string) { ch <- ReadResult{Line: chunk} },
		func(err error) { ch <- ReadResult{Err: err} },
	)
	return ch
}

func (e *Engine) readCharInto(prompt string, resolve func(string), reject func(error)) {
	e.write(prompt)
	e.activeChar = &activeCharRead{prompt: prompt, resolve: resolve, reject: reject}
}

// AbortRead rejects whichever reads are pending with reason (ErrAborted
// when nil) and deactivates the engine. A line break is written first so
// the caller's next output starts on a fresh line.
func (e *Engine) AbortRead(reason error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason == nil {
		reason = ErrAborted
	}
	e.rejectPending(reason)
}

func (e *Engine) rejectPending(err error) {
	if e.activeRead != nil || e.activeChar != nil {
		e.write("\r\n")
	}
	if p := e.activeRead; p != nil {
		e.activeRead = nil
		p.reject(err)
	}
	if p := e.activeChar; p != nil {
		e.activeChar = nil
		p.reject(err)
	}
	e.active = false
}

// AddAutocompleteHandler registers a candidate producer and returns a
// token for RemoveAutocompleteHandler. Handlers run in registration order.
func (e *Engine) AddAutocompleteHandler(handler AutocompleteHandler) HandlerToken {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextToken++
	e.handlers = append(e.handlers, registeredHandler{token: e.nextToken, handler: handler})
	return e.nextToken
}

// RemoveAutocompleteHandler unregisters the handler registered under
// token. Unknown tokens are a no-op.
func (e *Engine) RemoveAutocompleteHandler(token HandlerToken) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, h := range e.handlers {
		if h.token == token {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Print normalizes every run of line terminators in message to a single
// newline, converts to the terminal's \r\n convention and writes it.
func (e *Engine) Print(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.print(message)
}

// Println prints message followed by a line break.
func (e *Engine) Println(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.println(message)
}

func (e *Engine) print(message string) {
	norm := lineBreakRE.ReplaceAllString(message, "\n")
	e.write(strings.ReplaceAll(norm, "\n", "\r\n"))
}

func (e *Engine) println(message string) {
	e.print(message + "\n")
}

// PrintWide lays items out in a column grid sized to the terminal width:
// column width is the widest item plus two cells of padding, items flow
// row-major. Empty items prints a single blank line.
func (e *Engine) PrintWide(items []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.printWide(items, wideListPadding)
}

func (e *Engine) printWide(items []string, padding int) {
	if len(items) == 0 {
		e.println("")
		return
	}

	itemWidth := 0
	for _, item := range items {
		if w := runewidth.StringWidth(item); w > itemWidth {
			itemWidth = w
		}
	}
	itemWidth += padding

	wideCols := e.termCols / itemWidth
	if wideCols < 1 {
		wideCols = 1
	}
	wideRows := (len(items) + wideCols - 1) / wideCols

	i := 0
	for row := 0; row < wideRows; row++ {
		var line strings.Builder
		for col := 0; col < wideCols && i < len(items); col++ {
			item := items[i]
			i++
			line.WriteString(item)
			line.WriteString(strings.Repeat(" ", itemWidth-runewidth.StringWidth(item)))
		}
		if e.colors != nil {
			e.println(e.colors.Listing.ToANSI() + line.String() + Reset())
		} else {
			e.println(line.String())
		}
	}
}

// HandleData processes one raw data chunk from the terminal surface.
//
// A pending char read intercepts the chunk whole. Chunks longer than three
// runes that do not start with ESC are treated as pasted text: their line
// breaks are normalized to carriage returns and they are replayed one rune
// at a time, so pasting behaves exactly like fast typing, continuation
// logic included.
func (e *Engine) HandleData(chunk string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if chunk == "" {
		return
	}
	if p := e.activeChar; p != nil {
		e.activeChar = nil
		e.write("\r\n")
		p.resolve(chunk)
		return
	}
	if !e.active {
		return
	}

	runes := []rune(chunk)
	if len(runes) > 3 && runes[0] != escByte {
		norm := lineBreakRE.ReplaceAllString(chunk, "\r")
		for _, r := range norm {
			e.handleData(string(r))
		}
		return
	}
	e.handleData(chunk)
}

// HandleResize reacts to a terminal dimension change: the input is erased
// at the old cached size, the size cache is updated, and the input is
// redrawn wrapped to the new width. The size is cached precisely so the
// erase happens against the geometry the text was drawn with.
func (e *Engine) HandleResize(cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	if !e.active {
		e.termCols, e.termRows = cols, rows
		return
	}
	e.clearInput()
	e.termCols, e.termRows = cols, rows
	e.setInput(string(e.input), false)
}

func (e *Engine) handleData(chunk string) {
	if !e.active || chunk == "" {
		return
	}
	runes := []rune(chunk)
	switch r := runes[0]; {
	case r == escByte:
		// Unrecognized sequences map to ActionNone and are dropped.
		e.applyAction(e.keyMap.GetSequenceAction(string(runes[1:])))
	case r < 32 || r == '\x7f':
		e.applyAction(e.keyMap.GetAction(r))
	default:
		e.handleCursorInsert(chunk)
	}
}

func (e *Engine) applyAction(action KeyAction) {
	switch action {
	case ActionSubmit:
		if isIncompleteInput(string(e.input)) {
			e.handleCursorInsert("\n")
		} else {
			e.finishRead()
		}

	case ActionInterrupt:
		// Discard the line in place: no pending read is rejected.
		e.setCursor(len(e.input))
		prompt := ""
		if e.activeRead != nil {
			prompt = e.activeRead.prompt
		}
		e.write(e.notice("^C") + "\r\n" + prompt)
		e.input = nil
		e.cursor = 0
		e.history.Rewind()

	case ActionEOF:
		if len(e.input) == 0 {
			e.rejectPending(ErrEOF)
		}

	case ActionBackspace:
		e.handleCursorErase(true)

	case ActionDelete:
		e.handleCursorErase(false)

	case ActionComplete:
		e.handleComplete()

	case ActionMoveLeft:
		e.setCursor(e.cursor - 1)

	case ActionMoveRight:
		e.setCursor(e.cursor + 1)

	case ActionMoveHome:
		e.setCursor(0)

	case ActionMoveEnd:
		e.setCursor(len(e.input))

	case ActionWordLeft:
		e.setCursor(closestLeftBoundary(string(e.input), e.cursor))

	case ActionWordRight:
		e.setCursor(closestRightBoundary(string(e.input), e.cursor))

	case ActionKillWordLeft:
		ofs := closestLeftBoundary(string(e.input), e.cursor)
		if ofs < e.cursor {
			newInput := string(e.input[:ofs]) + string(e.input[e.cursor:])
			e.clearInput()
			e.cursor = ofs
			e.setInput(newInput, false)
		}

	case ActionHistoryPrevious:
		if entry, ok := e.history.Previous(); ok {
			e.setInput(entry, true)
			e.setCursor(len([]rune(entry)))
		}

	case ActionHistoryNext:
		entry, _ := e.history.Next()
		e.setInput(entry, true)
		e.setCursor(len([]rune(entry)))
	}
}

// handleComplete implements tab completion over the buffer up to the
// cursor. With no handlers registered, Tab inserts literal spaces.
func (e *Engine) handleComplete() {
	if len(e.handlers) == 0 {
		e.handleCursorInsert("    ")
		return
	}

	fragment := string(e.input[:e.cursor])
	handlers := make([]AutocompleteHandler, len(e.handlers))
	for i, h := range e.handlers {
		handlers[i] = h.handler
	}
	candidates := collectCandidates(handlers, fragment, e.warnError)
	slices.Sort(candidates)

	switch {
	case len(candidates) == 0:
		if !hasTailingWhitespace(fragment) {
			e.handleCursorInsert(" ")
		}

	case len(candidates) == 1:
		token := lastToken(fragment)
		e.handleCursorInsert(candidates[0][len(token):] + " ")

	case len(candidates) <= e.maxAutocompleteEntries:
		token := lastToken(fragment)
		if shared, ok := sharedFragment(token, candidates); ok && len(shared) > len(token) {
			e.handleCursorInsert(shared[len(token):])
		}
		e.printAndRestartPrompt(func(resume func()) {
			e.printWide(candidates, wideListPadding)
			resume()
		})

	default:
		count := len(candidates)
		e.printAndRestartPrompt(func(resume func()) {
			prompt := fmt.Sprintf("Display all %d possibilities? (y or n) ", count)
			e.readCharInto(e.notice(prompt),
				func(answer string) {
					if answer == "y" || answer == "Y" {
						e.printWide(candidates, wideListPadding)
					}
					resume()
				},
				func(error) { resume() },
			)
		})
	}
}

// printAndRestartPrompt parks the cursor past the input, runs fn on a
// fresh line and hands it a resume continuation that restores the saved
// cursor and redraws the prompt. resume runs exactly once no matter
// whether fn completes synchronously or from a later event, and is a
// no-op once the line read has gone away.
func (e *Engine) printAndRestartPrompt(fn func(resume func())) {
	saved := e.cursor
	e.setCursor(len(e.input))
	e.write("\r\n")

	var once sync.Once
	resume := func() {
		once.Do(func() {
			if e.activeRead == nil {
				return
			}
			e.cursor = saved
			e.setInput(string(e.input), false)
		})
	}
	fn(resume)
}

// finishRead resolves the pending line read with the buffer contents.
func (e *Engine) finishRead() {
	line := string(e.input)
	e.history.Push(line)
	e.write("\r\n")
	e.active = false
	if p := e.activeRead; p != nil {
		e.activeRead = nil
		p.resolve(line)
	}
}

// applyPrompts composes the displayed text: the prompt, then the input
// with each embedded newline followed by the continuation prompt. All
// screen geometry is computed over this composed string.
func (e *Engine) applyPrompts(input string) string {
	prompt, continuation := "", ""
	if e.activeRead != nil {
		prompt = e.activeRead.prompt
		continuation = e.activeRead.continuation
	}
	return prompt + strings.ReplaceAll(input, "\n", "\n"+continuation)
}

// applyPromptOffset translates a logical offset into input to the
// corresponding offset in the composed string.
func (e *Engine) applyPromptOffset(input string, offset int) int {
	runes := []rune(input)
	if offset > len(runes) {
		offset = len(runes)
	}
	return len([]rune(e.applyPrompts(string(runes[:offset]))))
}

// clearInput erases the currently displayed composed input: move down to
// its last physical row, clear it, then clear every row above it.
func (e *Engine) clearInput() {
	composed := e.applyPrompts(string(e.input))
	allRows := countLines(composed, e.termCols)

	promptOffset := e.applyPromptOffset(string(e.input), e.cursor)
	row, _ := offsetToColRow(composed, promptOffset, e.termCols)

	for i := row; i < allRows-1; i++ {
		e.write("\x1b[E")
	}
	e.write("\r\x1b[K")
	for i := 1; i < allRows; i++ {
		e.write("\x1b[F\x1b[K")
	}
}

// setInput replaces the displayed input. The current display is erased
// first unless the caller already did, the composed string is written,
// the cursor offset is clamped to the new input, and the physical cursor
// is repositioned with relative movement only.
func (e *Engine) setInput(newInput string, clear bool) {
	if clear {
		e.clearInput()
	}

	composed := e.applyPrompts(newInput)
	e.write(strings.ReplaceAll(composed, "\n", "\r\n"))

	runes := []rune(newInput)
	if e.cursor > len(runes) {
		e.cursor = len(runes)
	}

	promptOffset := e.applyPromptOffset(newInput, e.cursor)
	newRows := countLines(composed, e.termCols)
	row, col := offsetToColRow(composed, promptOffset, e.termCols)

	e.write("\r")
	for i := row; i < newRows-1; i++ {
		e.write("\x1b[F")
	}
	for i := 0; i < col; i++ {
		e.write("\x1b[C")
	}

	e.input = runes
}

// setCursor moves the logical cursor to newCursor (clamped) and emits the
// minimal relative movement from the old physical position to the new
// one. It never rewrites content.
func (e *Engine) setCursor(newCursor int) {
	if newCursor < 0 {
		newCursor = 0
	}
	if newCursor > len(e.input) {
		newCursor = len(e.input)
	}

	composed := e.applyPrompts(string(e.input))

	prevOffset := e.applyPromptOffset(string(e.input), e.cursor)
	prevRow, prevCol := offsetToColRow(composed, prevOffset, e.termCols)

	newOffset := e.applyPromptOffset(string(e.input), newCursor)
	newRow, newCol := offsetToColRow(composed, newOffset, e.termCols)

	for i := prevRow; i < newRow; i++ {
		e.write("\x1b[B")
	}
	for i := newRow; i < prevRow; i++ {
		e.write("\x1b[A")
	}
	for i := prevCol; i < newCol; i++ {
		e.write("\x1b[C")
	}
	for i := newCol; i < prevCol; i++ {
		e.write("\x1b[D")
	}

	e.cursor = newCursor
}

// handleCursorErase deletes the rune left of the cursor (backspace) or at
// the cursor (forward delete). The display is erased before the buffer
// mutates so the erase math still matches what is on screen.
func (e *Engine) handleCursorErase(backspace bool) {
	if backspace {
		if e.cursor <= 0 {
			return
		}
		newInput := string(e.input[:e.cursor-1]) + string(e.input[e.cursor:])
		e.clearInput()
		e.cursor--
		e.setInput(newInput, false)
		return
	}
	if e.cursor >= len(e.input) {
		return
	}
	newInput := string(e.input[:e.cursor]) + string(e.input[e.cursor+1:])
	e.setInput(newInput, true)
}

// handleCursorInsert inserts data at the cursor and advances it past the
// insertion.
func (e *Engine) handleCursorInsert(data string) {
	newInput := string(e.input[:e.cursor]) + data + string(e.input[e.cursor:])
	e.clearInput()
	e.cursor += len([]rune(data))
	e.setInput(newInput, false)
}

func (e *Engine) write(text string) {
	e.surface.Write(text)
}

func (e *Engine) notice(text string) string {
	if e.colors == nil {
		return text
	}
	return e.colors.Notice.ToANSI() + text + Reset()
}

func (e *Engine) warnError(err error) {
	fmt.Fprintf(e.warnOut, "Warning: %v\n", err)
}
