package utils

import (
	"log"
	"time"

	"podlearn/store"

	"github.com/robfig/cron/v3"
)

// SubscriptionSweeper runs the daily subscription maintenance: expire rows
// past their period end and remind users whose period ends within two days.
// Gateway webhooks drive every other status transition.
type SubscriptionSweeper struct {
	store  store.SweeperStore
	mailer *Mailer
}

func NewSubscriptionSweeper(s store.SweeperStore, mailer *Mailer) *SubscriptionSweeper {
	return &SubscriptionSweeper{store: s, mailer: mailer}
}

// Start schedules the sweep daily at 09:00 and returns the running cron.
func (sw *SubscriptionSweeper) Start() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SWEEPER] Running daily subscription check...")
		sw.SendExpiryReminders()
		sw.ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SWEEPER] Started - runs daily at 9 AM")
	return c
}

// SendExpiryReminders emails users whose subscription ends within two days
// and have not been reminded yet.
func (sw *SubscriptionSweeper) SendExpiryReminders() {
	// Without a configured sender no reminder goes out; marking rows as
	// reminded would silence them forever.
	if !sw.mailer.Enabled() {
		log.Println("[SUBSCRIPTION-SWEEPER] Mailer not configured, skipping reminders")
		return
	}

	now := time.Now()
	subs, err := sw.store.SubscriptionsExpiringBetween(now, now.AddDate(0, 0, 2))
	if err != nil {
		log.Printf("[SUBSCRIPTION-SWEEPER] Error fetching expiring subscriptions: %v", err)
		return
	}

	for _, sub := range subs {
		user, err := sw.store.UserByID(sub.UserID)
		if err != nil || user == nil {
			log.Printf("[SUBSCRIPTION-SWEEPER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		if err := sw.mailer.SendSubscriptionExpiryReminder(user.Email, user.Name, sub.CurrentPeriodEnd); err != nil {
			continue
		}
		if err := sw.store.MarkReminderSent(sub.ID); err != nil {
			log.Printf("[SUBSCRIPTION-SWEEPER] Error marking reminder for subscription %d: %v", sub.ID, err)
		}
	}

	if len(subs) > 0 {
		log.Printf("[SUBSCRIPTION-SWEEPER] Processed %d expiring subscriptions", len(subs))
	}
}

// ExpireSubscriptions marks ACTIVE subscriptions past their period end as EXPIRED.
func (sw *SubscriptionSweeper) ExpireSubscriptions() {
	expired, err := sw.store.ExpireDueSubscriptions(time.Now())
	if err != nil {
		log.Printf("[SUBSCRIPTION-SWEEPER] Error expiring subscriptions: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("[SUBSCRIPTION-SWEEPER] Expired %d subscriptions", expired)
	}
}
