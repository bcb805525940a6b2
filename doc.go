// Package termline provides bash-style line editing on top of a
// character-grid terminal surface: cursor navigation, multi-line
// continuation for incomplete commands, kill/insert editing, command
// history recall, and tab completion.
//
// The engine keeps a logical input buffer and cursor offset and keeps the
// physical cursor on the wrapped, prompt-prefixed display in sync using
// only relative cursor-movement escape sequences. It is purely reactive:
// raw input chunks and resize notifications are pushed in through
// HandleData and HandleResize, and pending reads resolve through the
// channel returned by Read or ReadChar.
//
// Basic usage with a real terminal:
//
//	surface, err := termline.NewTTYSurface()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer surface.Close()
//
//	if err := surface.SetRaw(); err != nil {
//		log.Fatal(err)
//	}
//	defer surface.Restore()
//
//	engine := termline.New(surface, termline.WithHistorySize(100))
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go surface.Run(ctx, engine)
//
//	for {
//		result := <-engine.Read("$ ")
//		if result.Err != nil {
//			break
//		}
//		engine.Println("you typed: " + result.Line)
//	}
//
// Tab completion is driven by registered handlers. A handler receives the
// index of the token being completed and the tokens typed so far, and
// returns candidate strings; the engine filters them against the current
// token, inserts unambiguous remainders and lists the rest:
//
//	engine.AddAutocompleteHandler(func(index int, tokens []string) ([]string, error) {
//		if index == 0 {
//			return []string{"help", "history", "exit"}, nil
//		}
//		return nil, nil
//	})
//
// Multi-line input happens automatically: when Enter is pressed on input
// that is syntactically incomplete (an unbalanced quote, a trailing pipe
// or backslash), the engine inserts a newline and shows the continuation
// prompt instead of submitting.
//
// Engine methods are mutex-guarded, so the pattern above is safe: Run
// delivers HandleData/HandleResize events from its own goroutine while the
// caller invokes Read and the print helpers from another. The History ring
// returned by History() is the one unsynchronized surface; mutate it only
// before the event pump starts.
package termline
