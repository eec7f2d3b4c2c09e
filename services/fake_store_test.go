package services

import (
	"time"

	"podlearn/models"
)

// fakeStore is an in-memory stand-in for the GORM store. Any method can be
// made to fail by setting failOn[<method>].
type fakeStore struct {
	subs        []models.Subscription
	purchases   []models.Purchase
	contents    map[uint]*models.Content
	users       map[uint]*models.User
	quizzes     map[uint]*models.Quiz
	completions []models.QuizCompletion
	certs       []models.Certificate

	progressWrites []progressWrite

	failOn map[string]error
	calls  map[string]int
}

type progressWrite struct {
	userID    uint
	contentID uint
	milestone string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		contents: make(map[uint]*models.Content),
		users:    make(map[uint]*models.User),
		quizzes:  make(map[uint]*models.Quiz),
		failOn:   make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeStore) fail(method string) error {
	f.calls[method]++
	return f.failOn[method]
}

func (f *fakeStore) CurrentSubscription(userID uint, at time.Time) (*models.Subscription, error) {
	if err := f.fail("CurrentSubscription"); err != nil {
		return nil, err
	}
	var current *models.Subscription
	for i := range f.subs {
		sub := &f.subs[i]
		if sub.UserID != userID || !sub.IsCurrent(at) {
			continue
		}
		if current == nil || sub.CurrentPeriodEnd.After(current.CurrentPeriodEnd) {
			current = sub
		}
	}
	return current, nil
}

func (f *fakeStore) LatestSubscription(userID uint) (*models.Subscription, error) {
	if err := f.fail("LatestSubscription"); err != nil {
		return nil, err
	}
	var latest *models.Subscription
	for i := range f.subs {
		sub := &f.subs[i]
		if sub.UserID != userID {
			continue
		}
		if latest == nil || sub.CurrentPeriodEnd.After(latest.CurrentPeriodEnd) {
			latest = sub
		}
	}
	return latest, nil
}

func (f *fakeStore) HasCompletedContentPurchase(userID, contentID uint) (bool, error) {
	if err := f.fail("HasCompletedContentPurchase"); err != nil {
		return false, err
	}
	for _, p := range f.purchases {
		if p.UserID == userID && p.ContentID != nil && *p.ContentID == contentID &&
			p.Status == models.PurchaseStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasCompletedSeriesPurchase(userID, seriesID uint) (bool, error) {
	if err := f.fail("HasCompletedSeriesPurchase"); err != nil {
		return false, err
	}
	for _, p := range f.purchases {
		if p.UserID == userID && p.SeriesID != nil && *p.SeriesID == seriesID &&
			p.Status == models.PurchaseStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ContentByID(contentID uint) (*models.Content, error) {
	if err := f.fail("ContentByID"); err != nil {
		return nil, err
	}
	return f.contents[contentID], nil
}

func (f *fakeStore) PurchasesByUser(userID uint) ([]models.Purchase, error) {
	if err := f.fail("PurchasesByUser"); err != nil {
		return nil, err
	}
	var out []models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UserByID(userID uint) (*models.User, error) {
	if err := f.fail("UserByID"); err != nil {
		return nil, err
	}
	return f.users[userID], nil
}

func (f *fakeStore) QuizByID(quizID uint) (*models.Quiz, error) {
	if err := f.fail("QuizByID"); err != nil {
		return nil, err
	}
	return f.quizzes[quizID], nil
}

func (f *fakeStore) CompletionCount(userID, quizID uint) (int64, error) {
	if err := f.fail("CompletionCount"); err != nil {
		return 0, err
	}
	var count int64
	for _, c := range f.completions {
		if c.UserID == userID && c.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateCompletion(completion *models.QuizCompletion) error {
	if err := f.fail("CreateCompletion"); err != nil {
		return err
	}
	completion.ID = uint(len(f.completions) + 1)
	f.completions = append(f.completions, *completion)
	return nil
}

func (f *fakeStore) CompletionsByUser(userID uint) ([]models.QuizCompletion, error) {
	if err := f.fail("CompletionsByUser"); err != nil {
		return nil, err
	}
	var out []models.QuizCompletion
	for _, c := range f.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) CompletionsByUserAndQuiz(userID, quizID uint) ([]models.QuizCompletion, error) {
	if err := f.fail("CompletionsByUserAndQuiz"); err != nil {
		return nil, err
	}
	var out []models.QuizCompletion
	for _, c := range f.completions {
		if c.UserID == userID && c.QuizID == quizID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) SetProgressFlag(userID, contentID uint, milestone string, at time.Time) error {
	if err := f.fail("SetProgressFlag"); err != nil {
		return err
	}
	f.progressWrites = append(f.progressWrites, progressWrite{userID, contentID, milestone})
	return nil
}

func (f *fakeStore) ProgressByUserAndContent(userID, contentID uint) (*models.ContentProgress, error) {
	if err := f.fail("ProgressByUserAndContent"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeStore) CertificateByUserAndContent(userID, contentID uint) (*models.Certificate, error) {
	if err := f.fail("CertificateByUserAndContent"); err != nil {
		return nil, err
	}
	for i := range f.certs {
		if f.certs[i].UserID == userID && f.certs[i].ContentID == contentID {
			return &f.certs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateCertificate(cert *models.Certificate) error {
	if err := f.fail("CreateCertificate"); err != nil {
		return err
	}
	cert.ID = uint(len(f.certs) + 1)
	f.certs = append(f.certs, *cert)
	return nil
}

// fakeMailer records certificate notices instead of sending them.
type fakeMailer struct {
	sent []certNotice
	err  error
}

type certNotice struct {
	email string
	name  string
	title string
}

func (m *fakeMailer) SendCertificateIssued(email, name, contentTitle string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, certNotice{email, name, contentTitle})
	return nil
}

// activeSub builds a subscription current at now.
func activeSub(userID uint) models.Subscription {
	return models.Subscription{
		UserID:             userID,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: time.Now().Add(-24 * time.Hour),
		CurrentPeriodEnd:   time.Now().Add(24 * time.Hour),
	}
}

func completedPurchase(userID, contentID uint, amount float64) models.Purchase {
	id := contentID
	return models.Purchase{
		UserID:     userID,
		ContentID:  &id,
		AmountPaid: amount,
		Status:     models.PurchaseStatusCompleted,
	}
}

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }
