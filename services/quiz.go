package services

import (
	"encoding/json"
	"log"
	"math"
	"time"

	"podlearn/models"
	"podlearn/store"

	"github.com/google/uuid"
)

// QuizAnswer is one answered question within a submission.
type QuizAnswer struct {
	QuestionID        uint   `json:"questionId"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
}

// UserProgress is the per-user quiz aggregate, recomputed on every call.
type UserProgress struct {
	QuizzesCompleted int   `json:"quizzesCompleted"`
	QuizzesPassed    int   `json:"quizzesPassed"`
	AverageScore     int   `json:"averageScore"` // percent
	TotalTimeSpent   int64 `json:"totalTimeSpent"`
	TotalAttempts    int   `json:"totalAttempts"`
}

// CertificateMailer sends the certificate-issued notice. *utils.Mailer
// satisfies it.
type CertificateMailer interface {
	SendCertificateIssued(email, name, contentTitle string) error
}

// CertificateRecipientStore resolves the recipient and content title for
// the certificate-issued notice.
type CertificateRecipientStore interface {
	UserByID(userID uint) (*models.User, error)
	ContentByID(contentID uint) (*models.Content, error)
}

// QuizService records attempts and derives progress aggregates.
type QuizService struct {
	quizzes      store.QuizStore
	progress     store.ProgressStore
	certificates store.CertificateStore
	recipients   CertificateRecipientStore
	mailer       CertificateMailer
	now          func() time.Time
}

func NewQuizService(q store.QuizStore, p store.ProgressStore, c store.CertificateStore, r CertificateRecipientStore, mailer CertificateMailer) *QuizService {
	return &QuizService{quizzes: q, progress: p, certificates: c, recipients: r, mailer: mailer, now: time.Now}
}

// RecordCompletion appends a new attempt row; prior attempts are never
// touched. The attempt number is prior count + 1, read at write time, so two
// concurrent submissions may share a number. Malformed input is rejected
// before anything is written.
func (s *QuizService) RecordCompletion(userID, quizID uint, score, maxScore int, answers []QuizAnswer, timeSpent int64) (*models.QuizCompletion, error) {
	if maxScore <= 0 {
		return nil, &ValidationError{Field: "maxScore", Message: "must be greater than zero"}
	}
	if score < 0 || score > maxScore {
		return nil, &ValidationError{Field: "score", Message: "must be between 0 and maxScore"}
	}
	if len(answers) == 0 {
		return nil, &ValidationError{Field: "answers", Message: "at least one answer is required"}
	}
	for _, a := range answers {
		if a.QuestionID == 0 {
			return nil, &ValidationError{Field: "answers", Message: "answer is missing a question id"}
		}
		if len(a.SelectedOptionIDs) == 0 {
			return nil, &ValidationError{Field: "answers", Message: "answer has no selected options"}
		}
	}

	quiz, err := s.quizzes.QuizByID(quizID)
	if err != nil {
		return nil, dataAccess("quiz lookup", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}

	percentage := int(math.Round(float64(score) / float64(maxScore) * 100))
	passed := percentage >= quiz.PassThreshold

	priorAttempts, err := s.quizzes.CompletionCount(userID, quizID)
	if err != nil {
		return nil, dataAccess("attempt count", err)
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, &ValidationError{Field: "answers", Message: "answers are not serializable"}
	}

	completion := &models.QuizCompletion{
		UserID:        userID,
		QuizID:        quizID,
		Score:         score,
		MaxScore:      maxScore,
		Percentage:    percentage,
		Passed:        passed,
		Answers:       string(answersJSON),
		AttemptNumber: int(priorAttempts) + 1,
		TimeSpent:     timeSpent,
	}

	if err := s.quizzes.CreateCompletion(completion); err != nil {
		return nil, dataAccess("record completion", err)
	}

	if passed {
		s.markPassed(userID, quiz)
	}

	return completion, nil
}

// markPassed raises the quiz_completed flag and issues a certificate if one
// does not exist yet. Both writes are best-effort; a failure is logged and
// the attempt record stands.
func (s *QuizService) markPassed(userID uint, quiz *models.Quiz) {
	if err := s.progress.SetProgressFlag(userID, quiz.ContentID, store.MilestoneQuizCompleted, s.now()); err != nil {
		log.Printf("Failed to mark quiz_completed for user %d content %d: %v", userID, quiz.ContentID, err)
	}

	existing, err := s.certificates.CertificateByUserAndContent(userID, quiz.ContentID)
	if err != nil {
		log.Printf("Certificate lookup failed for user %d content %d: %v", userID, quiz.ContentID, err)
		return
	}
	if existing != nil {
		return
	}

	cert := &models.Certificate{
		UserID:       userID,
		ContentID:    quiz.ContentID,
		SerialNumber: uuid.NewString(),
		IssuedAt:     s.now(),
	}
	if err := s.certificates.CreateCertificate(cert); err != nil {
		log.Printf("Failed to issue certificate for user %d content %d: %v", userID, quiz.ContentID, err)
		return
	}

	s.sendCertificateNotice(userID, quiz.ContentID)
}

// sendCertificateNotice is best-effort; the certificate is already issued.
func (s *QuizService) sendCertificateNotice(userID, contentID uint) {
	if s.mailer == nil {
		return
	}

	user, err := s.recipients.UserByID(userID)
	if err != nil || user == nil {
		log.Printf("Certificate notice skipped, user %d lookup failed: %v", userID, err)
		return
	}

	title := "your course"
	if content, err := s.recipients.ContentByID(contentID); err == nil && content != nil {
		title = content.Title
	}

	if err := s.mailer.SendCertificateIssued(user.Email, user.Name, title); err != nil {
		log.Printf("Certificate notice failed for user %d: %v", userID, err)
	}
}

// Progress scans all completion rows for the user. Completed counts distinct
// quizzes attempted; passed counts distinct quizzes with at least one
// passing attempt; the average is over all attempts.
func (s *QuizService) Progress(userID uint) (*UserProgress, error) {
	completions, err := s.quizzes.CompletionsByUser(userID)
	if err != nil {
		return nil, dataAccess("completion scan", err)
	}

	progress := &UserProgress{}
	attempted := make(map[uint]bool)
	passed := make(map[uint]bool)
	percentSum := 0
	for _, c := range completions {
		progress.TotalAttempts++
		progress.TotalTimeSpent += c.TimeSpent
		percentSum += c.Percentage
		attempted[c.QuizID] = true
		if c.Passed {
			passed[c.QuizID] = true
		}
	}
	progress.QuizzesCompleted = len(attempted)
	progress.QuizzesPassed = len(passed)
	if progress.TotalAttempts > 0 {
		progress.AverageScore = int(math.Round(float64(percentSum) / float64(progress.TotalAttempts)))
	}
	return progress, nil
}

// Attempts returns the user's prior attempts for one quiz, oldest first.
func (s *QuizService) Attempts(userID, quizID uint) ([]models.QuizCompletion, error) {
	quiz, err := s.quizzes.QuizByID(quizID)
	if err != nil {
		return nil, dataAccess("quiz lookup", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	completions, err := s.quizzes.CompletionsByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, dataAccess("completion scan", err)
	}
	return completions, nil
}
