package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/heartmarshall/leitner/internal/adapter/postgres/sessionrepo"
	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/lesson"
)

// learnSession is the part of learning.Session the terminal driver uses.
type learnSession interface {
	Status() domain.SessionStatus
	Current() (card *lesson.Card, flipped bool)
	CardsLeft() int
	CardChecked(passed, shownFlipped bool)
	CardSkipped()
	Stop()
}

// drive shows cards until the session ends. Every card is shown question
// side first; after enter the answer is revealed and one of y, n, s or q is
// read. End of input stops the session.
func drive(s learnSession, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	read := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.ToLower(strings.TrimSpace(sc.Text())), true
	}

	for s.Status() == domain.SessionStatusLearning {
		card, flipped := s.Current()
		if card == nil {
			break
		}
		question, answer := card.Front, card.Back
		if flipped {
			question, answer = answer, question
		}

		fmt.Fprintf(out, "\n[%d left] %s\n", s.CardsLeft(), question)
		cmd, ok := read()
		if !ok {
			s.Stop()
			break
		}
		if cmd == "q" {
			s.Stop()
			break
		}

		fmt.Fprintf(out, "  %s\n", answer)
		for {
			fmt.Fprint(out, "known? [y]es [n]o [s]kip [q]uit: ")
			cmd, ok = read()
			if !ok {
				cmd = "q"
			}
			if handle(s, cmd, flipped) {
				break
			}
		}
	}
	return sc.Err()
}

func handle(s learnSession, cmd string, flipped bool) bool {
	switch cmd {
	case "y", "yes":
		s.CardChecked(true, flipped)
	case "n", "no":
		s.CardChecked(false, flipped)
	case "s", "skip":
		s.CardSkipped()
	case "q", "quit":
		s.Stop()
	default:
		return false
	}
	return true
}

func printSummary(out io.Writer, sum domain.SessionSummary, totals sessionrepo.Totals, recent []domain.SessionSummary) {
	fmt.Fprintf(out, "\nsession finished in %s\n", sum.Duration().Round(time.Second))
	fmt.Fprintf(out, "  passed %d, failed %d, skipped %d, relearned %d\n",
		sum.Passed, sum.Failed, sum.Skipped, sum.Relearned)
	fmt.Fprintf(out, "  %d sessions so far: %d passed, %d failed\n", totals.Sessions, totals.Passed, totals.Failed)
	for _, r := range recent {
		fmt.Fprintf(out, "  %s  %3d passed %3d failed\n", r.StartedAt.Local().Format("2006-01-02 15:04"), r.Passed, r.Failed)
	}
}
