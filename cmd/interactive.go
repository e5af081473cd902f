package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"propertyfinder/internal/render"
	"propertyfinder/internal/shortlist"
)

type key int

const (
	keyOther key = iota
	keyUp
	keyDown
	keyEnter
	keyQuit
)

// readKey decodes one keypress from a raw-mode terminal. Both ANSI arrow
// sequences and the Windows console form (0 or 224, then a code) are handled.
func readKey(r *bufio.Reader) (key, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return keyOther, err
	}
	switch b1 {
	case 0, 224:
		b2, _ := r.ReadByte()
		switch b2 {
		case 72:
			return keyUp, nil
		case 80:
			return keyDown, nil
		case 13:
			return keyEnter, nil
		}
	case 27:
		// A bare Esc arrives alone; arrows arrive as ESC [ A|B.
		if r.Buffered() == 0 {
			return keyQuit, nil
		}
		if b2, _ := r.ReadByte(); b2 != '[' || r.Buffered() == 0 {
			return keyOther, nil
		}
		switch b3, _ := r.ReadByte(); b3 {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		}
	case '\r', '\n':
		return keyEnter, nil
	case 3, 'q':
		return keyQuit, nil
	case 'k':
		return keyUp, nil
	case 'j':
		return keyDown, nil
	}
	return keyOther, nil
}

// pick lets the user move through lines with the arrow keys. Enter calls
// open with the selected index in cooked mode, then returns to the list.
func pick(lines []string, hint string, open func(i int)) {
	if len(lines) == 0 {
		return
	}
	if err := enableVT(); err != nil {
		fmt.Printf("(interactive selection not supported on this terminal: %v)\n", err)
		return
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive selection not supported on this terminal)")
		return
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	reader := bufio.NewReader(os.Stdin)
	selected := 0

	redraw := func() {
		fmt.Print("\033[H\033[2J")
		for i, l := range lines {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			// Raw mode does not translate \n.
			fmt.Print(prefix + l + "\r\n")
		}
		mutedColor.Print(hint + "\r\n")
	}
	redraw()

	for {
		k, err := readKey(reader)
		if err != nil {
			return
		}
		switch k {
		case keyUp:
			if selected > 0 {
				selected--
				redraw()
			}
		case keyDown:
			if selected < len(lines)-1 {
				selected++
				redraw()
			}
		case keyEnter:
			_ = term.Restore(fd, oldState)
			fmt.Println()
			open(selected)

			fmt.Print("\n(press Enter to return)")
			_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

			oldState, err = term.MakeRaw(fd)
			if err != nil {
				return
			}
			reader = bufio.NewReader(os.Stdin)
			redraw()
		case keyQuit:
			fmt.Print("\r\n")
			return
		}
	}
}

// interactiveSelect shows the result cards in a picker. Enter prints the
// full record and offers to save it to the shortlist.
func interactiveSelect(ctx context.Context, cards []render.Card, enrichers []render.Enricher, store shortlist.Store) {
	lines := make([]string, len(cards))
	for i, c := range cards {
		lines[i] = cardLine(c)
	}
	pick(lines, "(↑/↓ to navigate, Enter to view details, Esc to quit)", func(i int) {
		c := cards[i]
		printDetails(os.Stdout, c, render.Details(c.Record, enrichers...))
		if store == nil {
			return
		}
		if askYesNo(os.Stdin, os.Stdout, "Save to shortlist? (y/N): ") {
			saveCard(ctx, os.Stdout, store, c)
		}
	})
}

func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, "\n"+prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func saveCard(ctx context.Context, w io.Writer, store shortlist.Store, c render.Card) {
	added, err := store.Add(ctx, shortlist.FromCard(c, timeNow()))
	switch {
	case err != nil:
		errorColor.Fprintf(w, "could not save: %v\n", err)
	case !added:
		mutedColor.Fprintln(w, "Already on shortlist.")
	default:
		priceColor.Fprintln(w, "Saved.")
	}
}
