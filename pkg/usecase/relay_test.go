package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/telex-integrations/mention-notifier/pkg/domain/interfaces"
	"github.com/telex-integrations/mention-notifier/pkg/domain/interfaces/mocks"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
	"github.com/telex-integrations/mention-notifier/pkg/service/mention"
	"github.com/telex-integrations/mention-notifier/pkg/usecase"
)

func okTransporter(transport interfaces.MailTransport) *mocks.TransporterMock {
	return &mocks.TransporterMock{
		GetTransportFunc: func(ctx context.Context) (interfaces.MailTransport, error) {
			return transport, nil
		},
	}
}

func sendRecorder() *mocks.MailTransportMock {
	return &mocks.MailTransportMock{
		SendFunc: func(ctx context.Context, env *model.Envelope) error {
			return nil
		},
	}
}

func directConfig() usecase.Config {
	return usecase.Config{
		Mode:    usecase.ModeDirect,
		Pattern: mention.PatternEmail,
		Sender:  "noreply@example.com",
	}
}

func directoryConfig() usecase.Config {
	return usecase.Config{
		Mode:           usecase.ModeDirectory,
		Pattern:        mention.PatternLoose,
		Sender:         "noreply@example.com",
		RequireMention: true,
	}
}

func channelSettings(id string) []model.Setting {
	return []model.Setting{
		{Label: "Channel", Type: "text", Default: id},
	}
}

func TestProcessDirectMode(t *testing.T) {
	ctx := context.Background()

	t.Run("email mention resolves and sends", func(t *testing.T) {
		transport := sendRecorder()
		transporter := okTransporter(transport)
		relay := usecase.NewRelay(directConfig(), nil, transporter)

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message: "hello @alice@example.com boy",
		})
		gt.NoError(t, err)
		gt.Equal(t, result.Mentions, []types.MentionToken{"@alice@example.com"})
		gt.Equal(t, result.Resolved, []types.EmailAddress{"alice@example.com"})
		gt.Equal(t, len(result.Unresolved), 0)
		gt.Equal(t, len(result.Attempted), 1)
		gt.True(t, result.Attempted[0].Success)
		gt.Equal(t, result.Attempted[0].Recipient, types.EmailAddress("alice@example.com"))

		calls := transport.SendCalls()
		gt.Equal(t, len(calls), 1)
		gt.Equal(t, calls[0].Env.To, types.EmailAddress("alice@example.com"))
		gt.Equal(t, calls[0].Env.From, types.EmailAddress("noreply@example.com"))
	})

	t.Run("message markup is sanitized", func(t *testing.T) {
		transport := sendRecorder()
		relay := usecase.NewRelay(directConfig(), nil, okTransporter(transport))

		_, err := relay.Process(ctx, &model.InboundEvent{
			Message: "<b>hi</b> @alice@example.com",
		})
		gt.NoError(t, err)

		calls := transport.SendCalls()
		gt.Equal(t, len(calls), 1)
		gt.Equal(t, calls[0].Env.Text, "Message: hi @alice@example.com")
	})

	t.Run("repeated mention sends twice", func(t *testing.T) {
		transport := sendRecorder()
		relay := usecase.NewRelay(directConfig(), nil, okTransporter(transport))

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message: "@a@x.io ping @a@x.io",
		})
		gt.NoError(t, err)
		gt.Equal(t, len(result.Attempted), 2)
		gt.Equal(t, len(transport.SendCalls()), 2)
	})

	t.Run("zero mentions tolerated without require-mention", func(t *testing.T) {
		transporter := okTransporter(sendRecorder())
		relay := usecase.NewRelay(directConfig(), nil, transporter)

		result, err := relay.Process(ctx, &model.InboundEvent{Message: "no mentions here"})
		gt.NoError(t, err)
		gt.Equal(t, len(result.Mentions), 0)
		gt.Equal(t, len(result.Attempted), 0)
		gt.Equal(t, len(transporter.GetTransportCalls()), 0)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		relay := usecase.NewRelay(directConfig(), nil, okTransporter(sendRecorder()))

		_, err := relay.Process(ctx, &model.InboundEvent{Message: "   "})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrNoMessage))
	})
}

func TestProcessDirectoryMode(t *testing.T) {
	ctx := context.Background()

	t.Run("username match resolves to member email", func(t *testing.T) {
		dir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error) {
				return []*model.Member{
					{Username: "bob", Email: "bob@co.com"},
				}, nil
			},
		}
		transport := sendRecorder()
		relay := usecase.NewRelay(directoryConfig(), dir, okTransporter(transport))

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message:  "hi @bob",
			Settings: channelSettings("C1"),
		})
		gt.NoError(t, err)
		gt.Equal(t, result.Resolved, []types.EmailAddress{"bob@co.com"})
		gt.Equal(t, len(result.Attempted), 1)
		gt.True(t, result.Attempted[0].Success)

		calls := dir.ListUsersCalls()
		gt.Equal(t, len(calls), 1)
		gt.Equal(t, calls[0].ChannelID, types.ChannelID("C1"))
	})

	t.Run("no directory match is skipped not errored", func(t *testing.T) {
		dir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error) {
				return nil, nil
			},
		}
		transporter := okTransporter(sendRecorder())
		relay := usecase.NewRelay(directoryConfig(), dir, transporter)

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message:  "hi @nobody",
			Settings: channelSettings("C1"),
		})
		gt.NoError(t, err)
		gt.Equal(t, result.Unresolved, []types.MentionToken{"@nobody"})
		gt.Equal(t, len(result.Attempted), 0)
		gt.Equal(t, len(transporter.GetTransportCalls()), 0)
	})

	t.Run("directory failure aborts the batch", func(t *testing.T) {
		dir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error) {
				return nil, goerr.New("connection refused", goerr.T(model.ErrTagDirectoryUnavailable))
			},
		}
		transporter := okTransporter(sendRecorder())
		relay := usecase.NewRelay(directoryConfig(), dir, transporter)

		_, err := relay.Process(ctx, &model.InboundEvent{
			Message:  "hi @bob",
			Settings: channelSettings("C1"),
		})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagDirectoryUnavailable))
		gt.Equal(t, len(transporter.GetTransportCalls()), 0)
	})

	t.Run("missing channel rejected", func(t *testing.T) {
		relay := usecase.NewRelay(directoryConfig(), &mocks.DirectoryMock{}, okTransporter(sendRecorder()))

		_, err := relay.Process(ctx, &model.InboundEvent{Message: "hi @bob"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrNoChannel))
	})

	t.Run("zero mentions rejected with require-mention", func(t *testing.T) {
		relay := usecase.NewRelay(directoryConfig(), &mocks.DirectoryMock{}, okTransporter(sendRecorder()))

		_, err := relay.Process(ctx, &model.InboundEvent{
			Message:  "nobody pinged",
			Settings: channelSettings("C1"),
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrNoMention))
	})

	t.Run("first matching member wins", func(t *testing.T) {
		dir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error) {
				return []*model.Member{
					{DisplayName: "bob", Email: "first@co.com"},
					{Username: "bob", Email: "second@co.com"},
				}, nil
			},
		}
		relay := usecase.NewRelay(directoryConfig(), dir, okTransporter(sendRecorder()))

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message:  "hi @bob",
			Settings: channelSettings("C1"),
		})
		gt.NoError(t, err)
		gt.Equal(t, result.Resolved, []types.EmailAddress{"first@co.com"})
	})
}

func TestProcessFailureIsolation(t *testing.T) {
	ctx := context.Background()

	t.Run("credential unavailable skips all sends", func(t *testing.T) {
		transport := sendRecorder()
		transporter := &mocks.TransporterMock{
			GetTransportFunc: func(ctx context.Context) (interfaces.MailTransport, error) {
				return nil, goerr.Wrap(model.ErrCredentialUnavailable, "exchange failed",
					goerr.T(model.ErrTagCredentialUnavailable))
			},
		}
		relay := usecase.NewRelay(directConfig(), nil, transporter)

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message: "@a@x.io and @b@y.co",
		})
		gt.NoError(t, err)
		gt.Equal(t, len(result.Attempted), 2)
		for _, outcome := range result.Attempted {
			gt.False(t, outcome.Success)
			gt.Equal(t, outcome.Error, types.ErrorKindCredentialUnavailable)
		}
		gt.Equal(t, len(transport.SendCalls()), 0)
	})

	t.Run("one delivery failure does not abort siblings", func(t *testing.T) {
		transport := &mocks.MailTransportMock{
			SendFunc: func(ctx context.Context, env *model.Envelope) error {
				if env.To == "a@x.io" {
					return goerr.New("mailbox full", goerr.T(model.ErrTagDeliveryFailed))
				}
				return nil
			},
		}
		relay := usecase.NewRelay(directConfig(), nil, okTransporter(transport))

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message: "@a@x.io and @b@y.co",
		})
		gt.NoError(t, err)
		gt.Equal(t, len(result.Attempted), 2)
		gt.Equal(t, result.Succeeded(), 1)
		gt.Equal(t, len(transport.SendCalls()), 2)

		var failed *model.SendOutcome
		for i := range result.Attempted {
			if !result.Attempted[i].Success {
				failed = &result.Attempted[i]
			}
		}
		gt.NotNil(t, failed)
		gt.Equal(t, failed.Recipient, types.EmailAddress("a@x.io"))
		gt.Equal(t, failed.Error, types.ErrorKindDeliveryFailed)
	})

	t.Run("disabled notifications skip dispatch", func(t *testing.T) {
		transporter := okTransporter(sendRecorder())
		relay := usecase.NewRelay(directConfig(), nil, transporter)

		result, err := relay.Process(ctx, &model.InboundEvent{
			Message: "hello @alice@example.com",
			Settings: []model.Setting{
				{Label: "Enable Email Notifications", Type: "checkbox", Default: "false"},
			},
		})
		gt.NoError(t, err)
		gt.Equal(t, result.Resolved, []types.EmailAddress{"alice@example.com"})
		gt.Equal(t, len(result.Attempted), 0)
		gt.Equal(t, len(transporter.GetTransportCalls()), 0)
	})
}
