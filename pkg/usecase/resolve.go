package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
	"github.com/telex-integrations/mention-notifier/pkg/service/mention"
)

// resolveAll maps every mention token to a recipient address. Unresolved
// tokens come back with an empty address and are skipped by the caller; a
// directory failure aborts the whole batch.
func (r *Relay) resolveAll(ctx context.Context, mentions []types.MentionToken, channelID types.ChannelID) ([]model.ResolvedRecipient, error) {
	if r.cfg.Mode == ModeDirect {
		recipients := make([]model.ResolvedRecipient, 0, len(mentions))
		for _, tok := range mentions {
			rcpt := model.ResolvedRecipient{Token: tok}
			if bare := tok.Bare(); mention.IsEmailShaped(bare) {
				rcpt.Email = types.EmailAddress(bare)
			}
			recipients = append(recipients, rcpt)
		}
		return recipients, nil
	}

	// Directory mode: one membership fetch covers the whole batch; every
	// token is matched against the same listing.
	members, err := r.directory.ListUsers(ctx, channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list channel users",
			goerr.V("channelID", channelID),
			goerr.T(model.ErrTagDirectoryUnavailable))
	}

	recipients := make([]model.ResolvedRecipient, 0, len(mentions))
	for _, tok := range mentions {
		rcpt := model.ResolvedRecipient{Token: tok}
		for _, m := range members {
			if m.Matches(tok.Bare()) {
				rcpt.Email = types.EmailAddress(m.Email)
				break
			}
		}
		recipients = append(recipients, rcpt)
	}
	return recipients, nil
}
