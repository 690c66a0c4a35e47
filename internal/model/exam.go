package model

import "time"

// ExamPaper is a saved exam header. Its questions live in exam_questions.
type ExamPaper struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamCandidate is a validated, unsaved exam. QuestionIDs is ascending and
// free of duplicates; Questions carries the matching catalog rows.
type ExamCandidate struct {
	OwnerID     int64      `json:"owner_id"`
	Title       string     `json:"title"`
	QuestionIDs []int64    `json:"question_ids"`
	Questions   []Question `json:"questions"`
}

// TotalMarks sums the marks of the candidate's questions.
func (c *ExamCandidate) TotalMarks() int {
	return SumMarks(c.Questions)
}

// ExamView is the read-side projection of a saved exam.
// TotalMarks is computed from the questions' current marks on every read.
type ExamView struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	CreatedAt     time.Time  `json:"created_at"`
	Questions     []Question `json:"questions"`
	QuestionCount int        `json:"question_count"`
	TotalMarks    int        `json:"total_marks"`
}

// NewExamView builds the view for paper with its linked questions in paper order.
func NewExamView(paper *ExamPaper, questions []Question) *ExamView {
	if questions == nil {
		questions = []Question{}
	}
	SortForPaper(questions)
	return &ExamView{
		ID:            paper.ID,
		Title:         paper.Title,
		CreatedAt:     paper.CreatedAt,
		Questions:     questions,
		QuestionCount: len(questions),
		TotalMarks:    SumMarks(questions),
	}
}

// ExamSummary is one row of the exam history listing.
type ExamSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int       `json:"question_count"`
	TotalMarks    int       `json:"total_marks"`
}

// CreateExamRequest is the payload for assembling and saving an exam.
// Title and selection emptiness are checked by the assembler so the
// caller gets its specific reason back.
type CreateExamRequest struct {
	Title       string  `json:"title" binding:"max=255"`
	QuestionIDs []int64 `json:"question_ids"`
}
