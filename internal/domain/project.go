package domain

// Project groups tasks, members and sprint state for one workspace.
type Project struct {
	ID      string
	Name    string
	Owner   *User
	Tasks   []*Task
	Members []*User
	Sprint  *Sprint
}

// TaskByID returns the task with the given id, or nil when absent.
func (p *Project) TaskByID(id string) *Task {
	for _, task := range p.Tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// Sprint tracks story points over a sprint window.
type Sprint struct {
	ID          string
	TotalPoints int
	LengthDays  int
}

// VelocityPerDay divides completed points by the sprint length in days.
func (s *Sprint) VelocityPerDay(points int) int {
	return points / s.LengthDays
}
