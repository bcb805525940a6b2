// Command shell is a minimal read-eval-print loop demonstrating line
// editing, multi-line continuation and history recall.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/termline/termline"
)

func main() {
	surface, err := termline.NewTTYSurface()
	if err != nil {
		log.Fatal(err)
	}
	defer surface.Close()

	if err := surface.SetRaw(); err != nil {
		log.Fatal(err)
	}
	defer surface.Restore()

	engine := termline.New(surface,
		termline.WithHistorySize(100),
		termline.WithColorScheme(termline.ThemeDefault),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go surface.Run(ctx, engine)

	engine.Println("Type commands; quotes and trailing pipes continue on the next line.")
	engine.Println("Ctrl+D or \"exit\" quits.")

	for {
		result := <-engine.Read("$ ")
		if result.Err != nil {
			if errors.Is(result.Err, termline.ErrEOF) {
				break
			}
			fmt.Fprintln(os.Stderr, result.Err)
			break
		}

		line := strings.TrimSpace(result.Line)
		if line == "exit" {
			break
		}
		if line == "history" {
			engine.PrintWide(engine.History().Entries())
			continue
		}
		if line != "" {
			engine.Println("you typed: " + result.Line)
		}
	}
	engine.Println("bye")
}
