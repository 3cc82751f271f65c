package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/domain/review"
)

const reviewHelp = `Commands:
  list            show candidates
  accept N        accept candidate N
  reject N        reject candidate N
  edit N          edit front and back of candidate N
  save            save accepted and edited candidates
  save-all        save every candidate that is not rejected
  quit            leave without saving`

// reviewLoop drives a review.Session from line-oriented input. Candidate
// numbers typed by the user start at 1.
type reviewLoop struct {
	session  *review.Session
	saver    review.Saver
	in       *bufio.Reader
	out      io.Writer
	prompt   bool
	colorize bool
}

func newReviewLoop(session *review.Session, saver review.Saver, in io.Reader, out io.Writer) *reviewLoop {
	return &reviewLoop{
		session:  session,
		saver:    saver,
		in:       bufio.NewReader(in),
		out:      out,
		prompt:   isTerminal(in),
		colorize: isTerminal(out),
	}
}

// run processes commands until quit, end of input or a successful save.
func (l *reviewLoop) run(ctx context.Context) error {
	l.list()
	fmt.Fprintln(l.out, reviewHelp)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.prompt {
			fmt.Fprint(l.out, "> ")
		}
		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		done, err := l.handle(ctx, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle executes one command line and reports whether the loop is finished.
func (l *reviewLoop) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "list", "ls":
		l.list()
	case "accept", "a":
		if i, ok := l.index(args); ok {
			l.session.Accept(i)
			l.list()
		}
	case "reject", "r":
		if i, ok := l.index(args); ok {
			l.session.Reject(i)
			l.list()
		}
	case "edit", "e":
		if i, ok := l.index(args); ok {
			return false, l.edit(i)
		}
	case "save":
		return l.save(ctx, false), nil
	case "save-all":
		return l.save(ctx, true), nil
	case "quit", "q", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(l.out, reviewHelp)
	default:
		fmt.Fprintf(l.out, "Unknown command %q. Type help for a list.\n", cmd)
	}
	return false, nil
}

// index parses a 1-based candidate number into a session index.
func (l *reviewLoop) index(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(l.out, "Expected a candidate number.")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > l.session.Len() {
		fmt.Fprintf(l.out, "No candidate %s.\n", args[0])
		return 0, false
	}
	return n - 1, true
}

func (l *reviewLoop) edit(i int) error {
	current := l.session.Candidates()[i]

	front, err := l.ask(fmt.Sprintf("Front [%s]: ", current.Front), current.Front)
	if err != nil {
		return err
	}
	back, err := l.ask(fmt.Sprintf("Back [%s]: ", current.Back), current.Back)
	if err != nil {
		return err
	}

	if err := l.session.Edit(i, front, back); err != nil {
		fmt.Fprintf(l.out, "Not changed: %v\n", err)
		return nil
	}
	l.list()
	return nil
}

// ask reads one answer; an empty answer keeps fallback.
func (l *reviewLoop) ask(prompt, fallback string) (string, error) {
	fmt.Fprint(l.out, prompt)
	line, err := l.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return fallback, nil
}

// save reports true when the flashcards were stored and the session reset.
func (l *reviewLoop) save(ctx context.Context, saveAll bool) bool {
	if saveAll && !l.session.CanSaveAll() {
		fmt.Fprintln(l.out, "Every candidate is rejected; nothing to save.")
		return false
	}
	if !saveAll && !l.session.CanSaveSelected() {
		fmt.Fprintln(l.out, "No candidates accepted yet. Accept some or use save-all.")
		return false
	}

	saved, err := l.session.Save(ctx, l.saver, saveAll)
	if err != nil {
		msg := l.session.LastError()
		if msg == "" {
			msg = err.Error()
		}
		fmt.Fprintln(l.out, msg)
		return false
	}
	fmt.Fprintf(l.out, "Saved %d flashcards.\n", len(saved))
	return true
}

func (l *reviewLoop) list() {
	candidates := l.session.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintln(l.out, "No candidates.")
		return
	}
	fmt.Fprintln(l.out, renderCandidates(candidates, l.colorize))
	summary := l.session.SelectionSummary()
	if l.session.CanSaveAll() {
		summary += fmt.Sprintf("; save-all stores %d", l.session.NonRejectedCount())
	}
	fmt.Fprintln(l.out, summary)
}
