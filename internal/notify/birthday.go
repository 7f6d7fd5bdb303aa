package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// BirthdayContent is the body of every friend birthday notification.
const BirthdayContent = "🎉🎂 Don't forget to congratulate your friend and wish them happiness! 🎈🌟"

// SweepBirthdays builds friend birthday notifications for accounts born on
// today's month and day. Accounts that already authored a birthday
// notification today are skipped as a whole.
func (d *Dispatcher) SweepBirthdays(ctx context.Context, today time.Time) ([]models.Notification, error) {
	accounts, err := d.src.Birthdays.FindAccountsWithBirthday(ctx, today)
	if err != nil {
		return nil, errorx.QueryFailure(err, "load birthday accounts")
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	sent, err := d.src.Birthdays.BirthdayAuthorsSentOn(ctx, today)
	if err != nil {
		return nil, errorx.QueryFailure(err, "load birthday notifications sent today")
	}

	pending := unsentBirthdays(accounts, sent)
	d.log.Info("birthday sweep",
		zap.String("day", today.Format(time.DateOnly)),
		zap.Int("birthdays", len(accounts)),
		zap.Int("already_sent", len(accounts)-len(pending)),
	)

	now := d.now()
	var out []models.Notification
	for _, a := range pending {
		friends, err := d.src.Friends.FriendAccounts(ctx, a.ID)
		if err != nil {
			return nil, errorx.QueryFailure(err, "load birthday account friends")
		}
		for _, f := range friends {
			if f.EnableFriendBirthday {
				out = append(out, newNotification(a.ID, f.ID, models.NotificationFriendBirthday, BirthdayContent, now))
			}
		}
	}
	return out, nil
}

// unsentBirthdays drops the accounts listed in sent.
func unsentBirthdays(accounts []models.Account, sent []uuid.UUID) []models.Account {
	skip := make(map[uuid.UUID]struct{}, len(sent))
	for _, id := range sent {
		skip[id] = struct{}{}
	}
	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := skip[a.ID]; !ok {
			out = append(out, a)
		}
	}
	return out
}
