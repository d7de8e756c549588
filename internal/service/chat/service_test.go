package chat_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	model "github.com/moosemarche/moosebot/backend/internal/model/chat"
	chat "github.com/moosemarche/moosebot/backend/internal/service/chat"
)

func newService() *chat.Service {
	return chat.NewService(intent.NewDispatcher(catalog.Seed(), intent.WithTicketSource(func() int { return 42424 })))
}

func TestServiceCreateSessionSeedsGreeting(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	require.Equal(t, model.RoleAssistant, transcript[0].Role)
	require.Equal(t, intent.OpeningGreeting, transcript[0].Content)
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "missing")
	require.ErrorIs(t, err, chat.ErrSessionNotFound)

	_, err = svc.Reply(ctx, "missing", "hello")
	require.ErrorIs(t, err, chat.ErrSessionNotFound)

	require.ErrorIs(t, svc.Reset(ctx, "missing"), chat.ErrSessionNotFound)
}

func TestServiceReplyRejectsEmpty(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.Reply(ctx, session.ID, "   ")
	require.ErrorIs(t, err, chat.ErrEmptyMessage)

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
}

func TestServiceReplyDispatchesContentVerbatim(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	padded, err := svc.Reply(ctx, session.ID, "thanks ")
	require.NoError(t, err)
	require.Equal(t, "thanks ", padded.User.Content)
	require.Equal(t, intent.FallbackReply, padded.Reply.Content)

	exact, err := svc.Reply(ctx, session.ID, "thanks")
	require.NoError(t, err)
	require.Equal(t, intent.SmallTalkReply, exact.Reply.Content)
}

func TestServiceVendorConversation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	quote, err := svc.Reply(ctx, session.ID, "Quote for 30k views")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeVendor, quote.Outcome)
	require.Nil(t, quote.Notification)
	require.Equal(t, model.RoleUser, quote.User.Role)
	require.Equal(t, session.ID, quote.Reply.SessionID)

	lead, err := svc.Reply(ctx, session.ID, "yes, premium please")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeVendorLead, lead.Outcome)
	require.True(t, lead.Flow.Vendor)
	require.Contains(t, lead.Reply.Content, "`#MB-42424`")
	require.NotNil(t, lead.Notification)
	require.Equal(t, "✅ VENDOR LEAD CAPTURED", lead.Notification.Title)

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 5)
	require.Equal(t, model.OutcomeVendorLead, transcript[4].Outcome)
}

func TestServiceConsumerConversation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	search, err := svc.Reply(ctx, session.ID, "find a plumber")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeConsumer, search.Outcome)

	join, err := svc.Reply(ctx, session.ID, "yes")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeConsumerLead, join.Outcome)
	require.Equal(t, intent.WaitlistConfirmation, join.Reply.Content)
	require.Equal(t, "🛡️", join.Notification.Icon)
}

func TestServiceResetRestoresGreeting(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.Reply(ctx, session.ID, "Quote for 30k views")
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, session.ID))

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	require.Equal(t, intent.OpeningGreeting, transcript[0].Content)

	// vendor flow is gone after a reset
	reply, err := svc.Reply(ctx, session.ID, "yes premium")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeNone, reply.Outcome)
}

func TestServiceLoadTranscriptReturnsCopy(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	transcript[0].Content = "mutated"

	again, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, intent.OpeningGreeting, again[0].Content)
}

func TestServiceReplyHonoursCancelledContext(t *testing.T) {
	svc := newService()
	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Reply(ctx, session.ID, "hello")
	require.ErrorIs(t, err, context.Canceled)
}

func TestServiceConcurrentTurnsStayPaired(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	const turns = 20
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reply(ctx, session.ID, "hello")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1+2*turns)
	for i := 1; i < len(transcript); i += 2 {
		require.Equal(t, model.RoleUser, transcript[i].Role)
		require.Equal(t, model.RoleAssistant, transcript[i+1].Role)
	}
}

func TestInspect(t *testing.T) {
	store := catalog.Seed()

	vendor := chat.Inspect(store, model.OutcomeVendorLead)
	require.Equal(t, "VENDOR_LEAD", vendor.Intent)
	require.Len(t, vendor.Pricing, 2)
	require.Empty(t, vendor.Vendors)

	consumer := chat.Inspect(store, model.OutcomeConsumer)
	require.Len(t, consumer.Vendors, len(store.Vendors()))
	require.Empty(t, consumer.Pricing)

	none := chat.Inspect(store, model.OutcomeBrand)
	require.True(t, strings.EqualFold(none.Intent, "brand"))
	require.Empty(t, none.Pricing)
}

func TestInspectRendersPlainNumbers(t *testing.T) {
	store := catalog.Seed()

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(chat.Inspect(store, model.OutcomeVendor))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"cpm_cost":5}`)
	require.Contains(t, string(raw), `"cpm_cost":12.5}`)

	raw, err = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(chat.Inspect(store, model.OutcomeConsumer))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"rating":4.8}`)
	require.Contains(t, string(raw), `"rating":4}`)
}

func TestNotificationFor(t *testing.T) {
	_, ok := chat.NotificationFor(model.OutcomeVendor)
	require.False(t, ok)
	n, ok := chat.NotificationFor(model.OutcomeConsumerLead)
	require.True(t, ok)
	require.Equal(t, "✅ WAITLIST CONFIRMED", n.Title)
}

func TestPresent(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	turn, err := svc.Reply(ctx, session.ID, "find a plumber")
	require.NoError(t, err)

	plain := chat.Present(turn, catalog.Seed(), false)
	require.Equal(t, turn.Reply.Content, plain.Reply)
	require.Equal(t, "none", plain.Flow)
	require.Nil(t, plain.Debug)

	debug := chat.Present(turn, catalog.Seed(), true)
	require.NotNil(t, debug.Debug)
	require.Equal(t, "CONSUMER", debug.Debug.Intent)
}
