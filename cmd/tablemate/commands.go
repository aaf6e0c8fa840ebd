package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tablemate/internal/application"
	"tablemate/internal/domain"
	"tablemate/internal/infrastructure/i18n"
	"tablemate/pkg/datetime"
)

const usage = `usage: tablemate <command> [flags]

commands:
  run        drive time-based transitions until interrupted (default)
  create     create an event
  status     show an event status and available actions
  watch      follow an event status until interrupted
  confirm    confirm an open event (creator only)
  cancel     cancel an open or confirmed event (creator only)
  apply      apply to an event
  approve    approve a pending participation (creator only)
  reject     reject a pending participation (creator only)
  presence   confirm your presence at an event
  chat       tell whether a user can use the event chat
`

// errUsage is returned when the command line cannot be parsed.
var errUsage = errors.New("invalid usage")

func dispatch(ctx context.Context, a *app, args []string, w io.Writer) error {
	cmd := "run"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "run":
		a.log.Info("🚀 lifecycle runner started")
		return a.runner.Run(ctx)
	case "create":
		return a.create(ctx, args, w)
	case "status":
		return a.status(ctx, args, w)
	case "watch":
		return a.watch(ctx, args, w)
	case "confirm", "cancel":
		return a.manual(ctx, cmd, args, w)
	case "apply", "approve", "reject", "presence":
		return a.participation(ctx, cmd, args, w)
	case "chat":
		return a.chat(ctx, args, w)
	case "help", "-h", "--help":
		fmt.Fprint(w, usage)
		return nil
	default:
		fmt.Fprint(w, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) create(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	creator := fs.String("creator", "", "creator user id")
	title := fs.String("title", "", "event title")
	kind := fs.String("kind", string(domain.KindSocial), "social or institutional")
	start := fs.String("start", "", "start, DD/MM/YYYY HH:MM")
	end := fs.String("end", "", "end, DD/MM/YYYY HH:MM")
	deadline := fs.String("deadline", "", "rating deadline, DD/MM/YYYY HH:MM")
	minParticipants := fs.Int("min", 2, "minimum participants")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	draft := application.EventDraft{
		CreatorID:       *creator,
		Title:           *title,
		Kind:            domain.EventKind(*kind),
		MinParticipants: *minParticipants,
	}
	var err error
	if draft.ScheduledStart, err = datetime.ParseStamp(*start, a.loc); err != nil {
		return err
	}
	if draft.ScheduledEnd, err = datetime.ParseStamp(*end, a.loc); err != nil {
		return err
	}
	if draft.EvaluationDeadline, err = datetime.ParseStamp(*deadline, a.loc); err != nil {
		return err
	}

	event, err := a.events.CreateEvent(ctx, draft)
	if err != nil {
		fmt.Fprintln(w, i18n.ErrorMessage(a.translator, a.cfg.Locale, err))
		return err
	}
	fmt.Fprintf(w, "event %d: %s (%s)\n", event.ID, event.Title, i18n.StatusLabel(a.translator, a.cfg.Locale, event.Status))
	return nil
}

func (a *app) status(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	eventID := fs.Uint("event", 0, "event id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	view, err := a.events.DescribeEvent(ctx, *eventID)
	if err != nil {
		fmt.Fprintln(w, i18n.ErrorMessage(a.translator, a.cfg.Locale, err))
		return err
	}
	e := view.Event
	fmt.Fprintf(w, "event %d: %s\n", e.ID, e.Title)
	fmt.Fprintf(w, "  status:       %s\n", i18n.StatusLabel(a.translator, a.cfg.Locale, e.Status))
	if view.Derived != e.Status {
		fmt.Fprintf(w, "  due:          %s\n", i18n.StatusLabel(a.translator, a.cfg.Locale, view.Derived))
	}
	fmt.Fprintf(w, "  start:        %s\n", datetime.Format(e.ScheduledStart, a.loc))
	fmt.Fprintf(w, "  end:          %s\n", datetime.Format(e.ScheduledEnd, a.loc))
	fmt.Fprintf(w, "  participants: %d/%d\n", e.ConfirmedParticipantCount, e.MinParticipants)
	if e.CancelReason != "" {
		fmt.Fprintf(w, "  reason:       %s\n", e.CancelReason)
	}
	var actions []string
	if view.Actions.CanConfirm {
		actions = append(actions, "confirm")
	}
	if view.Actions.CanCancel {
		actions = append(actions, "cancel")
	}
	if view.Actions.CanConfirmPresence {
		actions = append(actions, "presence")
	}
	if view.Actions.NeedsEvaluation {
		actions = append(actions, "evaluate")
	}
	fmt.Fprintf(w, "  actions:      %s\n", strings.Join(actions, ", "))
	return nil
}

func (a *app) watch(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	eventID := fs.Uint("event", 0, "event id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	a.lifecycle.Subscribe(func(u application.StatusUpdate) {
		fmt.Fprintf(w, "event %d: %s -> %s\n", u.EventID,
			i18n.StatusLabel(a.translator, a.cfg.Locale, u.From),
			i18n.StatusLabel(a.translator, a.cfg.Locale, u.To))
	})
	if err := a.lifecycle.Watch(ctx, *eventID); err != nil {
		return err
	}
	defer a.lifecycle.Unwatch(*eventID)
	if s, ok := a.lifecycle.Status(*eventID); ok {
		fmt.Fprintf(w, "event %d: %s\n", *eventID, i18n.StatusLabel(a.translator, a.cfg.Locale, s))
	}
	<-ctx.Done()
	return nil
}

func (a *app) manual(ctx context.Context, cmd string, args []string, w io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	eventID := fs.Uint("event", 0, "event id")
	actor := fs.String("actor", "", "acting user id")
	reason := fs.String("reason", "", "cancel reason")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	var (
		res application.Result
		err error
	)
	if cmd == "confirm" {
		res, err = a.lifecycle.Confirm(ctx, *eventID, *actor)
	} else {
		res, err = a.lifecycle.Cancel(ctx, *eventID, *actor, *reason)
	}
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		fmt.Fprintln(w, i18n.ErrorMessage(a.translator, a.cfg.Locale, err))
		return err
	}
	if res.Kind == application.ResultNoOp || res.Event == nil {
		fmt.Fprintln(w, a.translator.T(a.cfg.Locale, "result.noop", nil))
		return nil
	}
	fmt.Fprintln(w, a.translator.T(a.cfg.Locale, "result.applied", map[string]any{
		"Status": i18n.StatusLabel(a.translator, a.cfg.Locale, res.Event.Status),
	}))
	return nil
}

func (a *app) participation(ctx context.Context, cmd string, args []string, w io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	eventID := fs.Uint("event", 0, "event id (apply, presence)")
	participationID := fs.Uint("participation", 0, "participation id (approve, reject)")
	user := fs.String("user", "", "acting user id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	var err error
	switch cmd {
	case "apply":
		p, applyErr := a.participations.Apply(ctx, *eventID, *user)
		if applyErr == nil {
			fmt.Fprintf(w, "participation %d: %s\n", p.ID, p.Status)
		}
		err = applyErr
	case "approve":
		_, err = a.participations.Approve(ctx, *participationID, *user)
	case "reject":
		_, err = a.participations.Reject(ctx, *participationID, *user)
	case "presence":
		_, err = a.participations.ConfirmPresence(ctx, *eventID, *user)
	}
	if err != nil {
		fmt.Fprintln(w, i18n.ErrorMessage(a.translator, a.cfg.Locale, err))
		return err
	}
	fmt.Fprintln(w, "ok")
	return nil
}

func (a *app) chat(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	eventID := fs.Uint("event", 0, "event id")
	user := fs.String("user", "", "user id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	chat, err := a.participations.ChatAvailability(ctx, *eventID, *user)
	if err != nil {
		fmt.Fprintln(w, i18n.ErrorMessage(a.translator, a.cfg.Locale, err))
		return err
	}
	fmt.Fprintf(w, "chat available: %t (%s)\n", chat.Available, chat.Reason)
	return nil
}
