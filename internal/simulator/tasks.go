package simulator

import "faultline/internal/domain"

// TaskAssigneeEmail returns the email of the user assigned to a task.
// TASK-103 has no assignee, so the field access dereferences nil.
func (s *Service) TaskAssigneeEmail(projectID, taskID string) string {
	task := s.taskDetail(projectID, taskID)
	return task.Assignee.Email
}

// LatestComment returns the most recent comment on a task. TASK-101 has an
// empty comment list, so the indexed access is out of bounds.
func (s *Service) LatestComment(projectID, taskID string) domain.Comment {
	task := s.taskDetail(projectID, taskID)
	return task.LatestComment()
}

func (s *Service) taskDetail(projectID, taskID string) *domain.Task {
	project := s.loadProject(projectID)
	return project.TaskByID(taskID)
}

func (s *Service) loadProject(projectID string) *domain.Project {
	project := domain.SeedProject()
	if project.ID != projectID {
		return nil
	}
	return project
}
