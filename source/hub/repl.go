package hub

import (
	"io"

	"github.com/chzyer/readline"

	"github.com/teolang/teo/source/text"
)

// What the REPL reads lines from. A *readline.Instance is one.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

func NewLineReader(out io.Writer) (LineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          text.PROMPT,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "hub quit",
	})
}

// Runs the REPL until the user quits, the input runs out, or the program returns. Returns the
// exit status.
func StartHub(hub *Hub, rline LineReader) int {
	input := ""
	for {
		if input == "" {
			rline.SetPrompt(text.PROMPT)
		} else {
			rline.SetPrompt(text.CONTINUE)
		}
		line, err := rline.Readline()
		if err == readline.ErrInterrupt {
			input = ""
			continue
		}
		if err != nil { // Including io.EOF.
			hub.quit()
			return 0
		}
		input = input + line + "\n"
		if NeedsMore(input) {
			continue
		}
		quit, code := hub.Do(input)
		input = ""
		if quit {
			return code
		}
	}
}
