// Command autocomplete demonstrates tab completion: a fixed command
// vocabulary for the first token, subcommands for "git", and filesystem
// paths everywhere else.
package main

import (
	"context"
	"log"

	"github.com/termline/termline"
)

var commands = []string{"git", "go", "grep", "cat", "ls", "exit"}

var gitSubcommands = []string{"status", "stash", "show", "commit", "checkout", "pull", "push"}

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

	engine := termline.New(surface)

	engine.AddAutocompleteHandler(func(index int, tokens []string) ([]string, error) {
		if index == 0 {
			return commands, nil
		}
		if tokens[0] == "git" && index == 1 {
			return gitSubcommands, nil
		}
		return nil, nil
	})
	engine.AddAutocompleteHandler(termline.NewFileAutocompleteHandler())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go surface.Run(ctx, engine)

	engine.Println("Press Tab to complete commands and paths; Ctrl+D quits.")

	for {
		result := <-engine.Read("demo> ")
		if result.Err != nil {
			break
		}
		if result.Line == "exit" {
			break
		}
		engine.Println(result.Line)
	}
}
