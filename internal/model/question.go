package model

import (
	"sort"
	"time"
)

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "MCQ"
	QuestionTypeShortAnswer QuestionType = "SHORT_ANSWER"
	QuestionTypeEssay       QuestionType = "ESSAY"
	QuestionTypeTrueFalse   QuestionType = "TRUE_FALSE"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeShortAnswer, QuestionTypeEssay, QuestionTypeTrueFalse:
		return true
	}
	return false
}

// MCQOptions holds the four answer texts of a multiple choice question.
type MCQOptions struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// Question is a single stored exam question.
// Options and CorrectOption are only set for MCQ questions.
type Question struct {
	ID            int64        `json:"id"`
	OwnerID       int64        `json:"owner_id"`
	CourseID      int64        `json:"course_id"`
	CourseName    string       `json:"course_name,omitempty"`
	Topic         string       `json:"topic"`
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	Marks         int          `json:"marks"`
	Options       *MCQOptions  `json:"options,omitempty"`
	CorrectOption string       `json:"correct_option,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ClearNonMCQFields drops option data from questions that are not MCQ.
func (q *Question) ClearNonMCQFields() {
	if q.QuestionType != QuestionTypeMCQ {
		q.Options = nil
		q.CorrectOption = ""
	}
}

// QuestionRequest is the payload for creating or updating a question.
type QuestionRequest struct {
	CourseID      int64  `json:"course_id" binding:"required,gt=0"`
	Topic         string `json:"topic" binding:"required,notblank,max=150"`
	QuestionText  string `json:"question_text" binding:"required,notblank,max=5000"`
	QuestionType  string `json:"question_type" binding:"required,oneof=MCQ SHORT_ANSWER ESSAY TRUE_FALSE"`
	Marks         int    `json:"marks" binding:"required,gt=0,max=1000"`
	OptionA       string `json:"option_a" binding:"max=1000"`
	OptionB       string `json:"option_b" binding:"max=1000"`
	OptionC       string `json:"option_c" binding:"max=1000"`
	OptionD       string `json:"option_d" binding:"max=1000"`
	CorrectOption string `json:"correct_option" binding:"omitempty,oneof=A B C D"`
}

// ToQuestion converts the request into a Question owned by ownerID.
func (r QuestionRequest) ToQuestion(ownerID int64) *Question {
	q := &Question{
		OwnerID:       ownerID,
		CourseID:      r.CourseID,
		Topic:         r.Topic,
		QuestionText:  r.QuestionText,
		QuestionType:  QuestionType(r.QuestionType),
		Marks:         r.Marks,
		CorrectOption: r.CorrectOption,
	}
	if q.QuestionType == QuestionTypeMCQ {
		q.Options = &MCQOptions{A: r.OptionA, B: r.OptionB, C: r.OptionC, D: r.OptionD}
	}
	return q
}

// QuestionFilter narrows a question listing. Zero values mean "any".
type QuestionFilter struct {
	CourseID     int64
	Topic        string
	QuestionType QuestionType
}

// SortForPaper orders questions the way they appear on a printed paper:
// by course name, then topic, then question type, then id.
func SortForPaper(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if a.CourseName != b.CourseName {
			return a.CourseName < b.CourseName
		}
		if a.Topic != b.Topic {
			return a.Topic < b.Topic
		}
		if a.QuestionType != b.QuestionType {
			return a.QuestionType < b.QuestionType
		}
		return a.ID < b.ID
	})
}

// SumMarks returns the total marks of qs.
func SumMarks(qs []Question) int {
	total := 0
	for _, q := range qs {
		total += q.Marks
	}
	return total
}
