package domain

import "time"

// SeedUsers builds the per-request sample user set. Bob's profile is missing
// the last_name entry and Alice's preferences have no notifications group;
// both gaps are load-bearing for the fault scenarios and must not be filled.
func SeedUsers() map[int64]*User {
	alice := &User{
		ID:    1,
		Email: "alice@example.com",
		Role:  "admin",
		Profile: map[string]any{
			"first_name": "Alice",
			"last_name":  "Chen",
			"title":      "Engineering Manager",
		},
		Preferences: Preferences{
			"appearance": {"theme": "dark"},
			"locale":     {"language": "en"},
		},
	}
	bob := &User{
		ID:    2,
		Email: "bob@example.com",
		Role:  "member",
		Profile: map[string]any{
			"first_name": "Bob",
		},
		Preferences: Preferences{
			"appearance": {"theme": "light"},
		},
	}
	charlie := &User{
		ID:    3,
		Email: "charlie@example.com",
		Role:  "member",
		Profile: map[string]any{
			"first_name": "Charlie",
			"last_name":  "Kim",
		},
		Preferences: Preferences{
			"appearance":    {"theme": "dark"},
			"locale":        {"language": "ko"},
			"notifications": {"email": "enabled", "push": "disabled"},
		},
	}
	return map[int64]*User{1: alice, 2: bob, 3: charlie}
}

// SeedProject builds the sample project. TASK-101 has no comments, TASK-103
// has no assignee, and the sprint length was never configured.
func SeedProject() *Project {
	users := SeedUsers()

	task1 := &Task{
		ID:          "TASK-101",
		Title:       "Set up CI pipeline",
		Description: "Configure the pipeline for pull requests",
		Assignee:    users[2],
		Tags:        []string{"devops", "ci"},
		Priority:    1,
	}
	task2 := &Task{
		ID:          "TASK-102",
		Title:       "Design landing page",
		Description: "Create mockups for the marketing site",
		Assignee:    users[3],
		Tags:        []string{"design"},
		Priority:    2,
		Comments: []Comment{
			{ID: "c-1", Author: "alice", Body: "First draft looks good", CreatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
			{ID: "c-2", Author: "charlie", Body: "Updated the hero section", CreatedAt: time.Date(2026, 3, 3, 14, 5, 0, 0, time.UTC)},
		},
	}
	task3 := &Task{
		ID:          "TASK-103",
		Title:       "Write API docs",
		Description: "Document all REST endpoints",
		Tags:        []string{"docs"},
		Priority:    1,
	}

	return &Project{
		ID:      "proj-1",
		Name:    "Faultline Demo",
		Owner:   users[1],
		Tasks:   []*Task{task1, task2, task3},
		Members: []*User{users[1], users[2], users[3]},
		Sprint:  &Sprint{ID: "sprint-7", TotalPoints: 80, LengthDays: 0},
	}
}

// SeedCategoryCycle builds a category hierarchy whose child deliberately
// links back to the root, forming a cycle.
func SeedCategoryCycle() *Category {
	root := &Category{Name: "Root"}
	child := root.AddChild("Child")
	child.Children = append(child.Children, root)
	return root
}
