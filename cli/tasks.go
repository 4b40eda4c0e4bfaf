// ABOUTME: Task CLI commands
// ABOUTME: Human-friendly commands for managing tasks and overdue checks
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"crmdeck/models"
	"crmdeck/store"
	"crmdeck/views"
)

// AddTaskCommand adds a new task.
func AddTaskCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Task description")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	priority := fs.String("priority", models.PriorityMedium, "Priority (low, medium, high)")
	assignedTo := fs.String("assigned-to", "", "Assignee")
	relatedType := fs.String("related-type", "", "Related record type (contact, lead, deal)")
	relatedID := fs.String("related-id", "", "Related record id")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if !models.ValidPriority(*priority) {
		return fmt.Errorf("invalid priority: %s", *priority)
	}

	task := models.Task{
		Title:       *title,
		Description: *description,
		Priority:    *priority,
		AssignedTo:  *assignedTo,
	}

	if *due != "" {
		ts, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", *due, err)
		}
		task.DueDate = &ts
	}
	if *relatedID != "" {
		id, err := parseID(*relatedID)
		if err != nil {
			return err
		}
		task.RelatedTo = &models.Relation{Type: *relatedType, ID: id}
	}

	created, err := s.AddTask(task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Task created: %s (ID: %s)\n", created.Title, created.ID)
	fmt.Printf("  Priority: %s  Status: %s\n", created.Priority, created.Status)
	return nil
}

// ListTasksCommand lists tasks, optionally filtered.
func ListTasksCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ExitOnError)
	query := fs.String("query", "", "Search term")
	status := fs.String("status", "", "Exact status filter")
	priority := fs.String("priority", "", "Exact priority filter")
	assignedTo := fs.String("assigned-to", "", "Exact assignee filter")
	overdueOnly := fs.Bool("overdue", false, "Show only overdue tasks")
	_ = fs.Parse(args)

	tasks := views.FilterTasks(s.Snapshot().Tasks, views.TaskFilter{
		Term:       *query,
		Status:     *status,
		Priority:   *priority,
		AssignedTo: *assignedTo,
	})

	now := time.Now()
	if *overdueOnly {
		tasks = views.OverdueTasks(tasks, now)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tDUE\tPRIORITY\tSTATUS\tID")
	_, _ = fmt.Fprintln(w, "-----\t---\t--------\t------\t--")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Title, due, t.Priority, t.Status, t.ID)
	}
	return w.Flush()
}

// UpdateTaskCommand applies a partial update to a task.
func UpdateTaskCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("update-task", flag.ExitOnError)
	id := fs.String("id", "", "Task id (required)")
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	due := fs.String("due", "", "New due date YYYY-MM-DD (empty clears)")
	priority := fs.String("priority", "", "New priority")
	status := fs.String("status", "", "New status")
	assignedTo := fs.String("assigned-to", "", "New assignee")
	relatedType := fs.String("related-type", "", "New related record type (contact, lead, deal)")
	relatedID := fs.String("related-id", "", "New related record id (empty clears)")
	_ = fs.Parse(args)

	taskID, err := parseID(*id)
	if err != nil {
		return err
	}
	if *priority != "" && !models.ValidPriority(*priority) {
		return fmt.Errorf("invalid priority: %s", *priority)
	}
	if *status != "" && !models.ValidTaskStatus(*status) {
		return fmt.Errorf("invalid status: %s", *status)
	}

	// Nullable fields: passing the flag with an empty value clears the field.
	var dueRef *time.Time
	if *due != "" {
		ts, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", *due, err)
		}
		dueRef = &ts
	}
	var relatedRef *models.Relation
	if *relatedID != "" {
		rid, err := parseID(*relatedID)
		if err != nil {
			return err
		}
		relatedRef = &models.Relation{Type: *relatedType, ID: rid}
	}

	patch := store.TaskPatch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "description":
			patch.Description = description
		case "due":
			patch.DueDate = &dueRef
		case "priority":
			patch.Priority = priority
		case "status":
			patch.Status = status
		case "assigned-to":
			patch.AssignedTo = assignedTo
		case "related-id":
			patch.RelatedTo = &relatedRef
		}
	})

	if err := s.UpdateTask(taskID, patch); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if task := s.GetTask(taskID); task != nil {
		fmt.Printf("✓ Task updated: %s (status: %s)\n", task.Title, task.Status)
	} else {
		fmt.Println("No task with that id; nothing updated")
	}
	return nil
}

// CompleteTaskCommand marks a task completed.
func CompleteTaskCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("complete-task", flag.ExitOnError)
	id := fs.String("id", "", "Task id (required)")
	_ = fs.Parse(args)

	taskID, err := parseID(*id)
	if err != nil {
		return err
	}

	status := models.TaskStatusCompleted
	if err := s.UpdateTask(taskID, store.TaskPatch{Status: &status}); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if task := s.GetTask(taskID); task != nil {
		fmt.Printf("✓ Task completed: %s\n", task.Title)
	} else {
		fmt.Println("No task with that id; nothing updated")
	}
	return nil
}

// DeleteTaskCommand removes a task.
func DeleteTaskCommand(s *store.EntityStore, args []string) error {
	fs := flag.NewFlagSet("delete-task", flag.ExitOnError)
	id := fs.String("id", "", "Task id (required)")
	_ = fs.Parse(args)

	taskID, err := parseID(*id)
	if err != nil {
		return err
	}

	if err := s.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Println("✓ Task deleted")
	return nil
}
