package model

import "time"

// Course groups a lecturer's questions.
type Course struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,notblank,max=150"`
}
