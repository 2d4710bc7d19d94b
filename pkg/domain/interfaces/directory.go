package interfaces

//go:generate moq -out mocks/directory_mock.go -pkg mocks . Directory

import (
	"context"

	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
)

// Directory is the channel-membership lookup capability. Any error it
// returns aborts the whole resolution batch.
type Directory interface {
	ListUsers(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error)
}
