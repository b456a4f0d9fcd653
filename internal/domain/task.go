package domain

import "time"

// Task represents a ticket on the project board.
type Task struct {
	ID          string
	Title       string
	Description string
	Assignee    *User
	Tags        []string
	Priority    int
	Comments    []Comment
}

// Comment is a single note on a task. Comments keep insertion order.
type Comment struct {
	ID        string
	Author    string
	Body      string
	CreatedAt time.Time
}

// LatestComment returns the most recently added comment.
func (t *Task) LatestComment() Comment {
	return t.Comments[len(t.Comments)-1]
}
