package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
)

// repl drives one terminal chat session.
type repl struct {
	svc       *chatService.Service
	store     catalog.Store
	sessionID string
	delay     time.Duration
	debug     bool
	ui        ui
}

func newREPL(ctx context.Context, store catalog.Store, out io.Writer, delay time.Duration, debug bool) (*repl, error) {
	svc := chatService.NewService(intent.NewDispatcher(store))
	session, err := svc.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	return &repl{
		svc:       svc,
		store:     store,
		sessionID: session.ID,
		delay:     delay,
		debug:     debug,
		ui:        ui{out: out},
	}, nil
}

func (r *repl) greet(ctx context.Context) error {
	r.ui.banner()
	transcript, err := r.svc.LoadTranscript(ctx, r.sessionID)
	if err != nil {
		return err
	}
	for _, msg := range transcript {
		r.ui.bot(msg.Content)
	}
	r.ui.info("Commands: /clear resets the session, /debug toggles the logic panel, /exit quits.")
	return nil
}

// run reads prompts until EOF or /exit.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	if err := r.greet(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			if err := r.svc.Reset(ctx, r.sessionID); err != nil {
				return err
			}
			r.ui.info("Session cleared.")
			r.ui.bot(intent.OpeningGreeting)
			continue
		case "/debug":
			r.debug = !r.debug
			if r.debug {
				r.ui.info("Debug panel on.")
			} else {
				r.ui.info("Debug panel off.")
			}
			continue
		}

		if err := r.turn(ctx, raw); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			r.ui.fail(err)
		}
	}
	return scanner.Err()
}

func (r *repl) turn(ctx context.Context, prompt string) error {
	r.ui.user(prompt)
	r.ui.hint(intent.StatusHint(prompt))
	if err := sleep(ctx, r.delay); err != nil {
		return err
	}

	turn, err := r.svc.Reply(ctx, r.sessionID, prompt)
	if err != nil {
		return err
	}

	view := chatService.Present(turn, r.store, r.debug)
	r.ui.bot(view.Reply)
	r.ui.toast(view.Notification)
	r.ui.debug(view.Debug)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
