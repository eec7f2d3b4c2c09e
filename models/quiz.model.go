package models

import "gorm.io/gorm"

// Quiz is attached to a content item. PassThreshold is a percentage; an
// attempt passes when its rounded percentage reaches it.
type Quiz struct {
	gorm.Model
	ContentID     uint   `gorm:"not null;index" json:"contentId"`
	Title         string `gorm:"not null" json:"title"`
	PassThreshold int    `gorm:"not null;default:70" json:"passThreshold"`
	IsPublished   bool   `gorm:"default:false" json:"isPublished"`
	IsDeleted     bool   `gorm:"default:false" json:"-"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is a single question within a quiz
type QuizQuestion struct {
	gorm.Model
	QuizID     uint   `gorm:"not null;index" json:"quizId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	Points     int    `gorm:"default:1" json:"points"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`

	Options []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizOption is one selectable answer for a question
type QuizOption struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}

// QuizCompletion is one recorded attempt. Append-only: retries create new
// rows, prior attempts are never overwritten.
type QuizCompletion struct {
	gorm.Model
	UserID        uint   `gorm:"not null;index" json:"userId"`
	QuizID        uint   `gorm:"not null;index" json:"quizId"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"maxScore"`
	Percentage    int    `json:"percentage"`
	Passed        bool   `gorm:"default:false" json:"passed"`
	Answers       string `gorm:"type:text" json:"answers"` // JSON array of {questionId, selectedOptionIds}
	AttemptNumber int    `gorm:"default:1" json:"attemptNumber"`
	TimeSpent     int64  `gorm:"default:0" json:"timeSpent"` // seconds
	IsDeleted     bool   `gorm:"default:false" json:"-"`
}

func (QuizCompletion) TableName() string {
	return "quiz_completions"
}
