package dto

// AddTaskForm represents the add-task form fields. Content is not
// required: an empty task is accepted.
type AddTaskForm struct {
	Content string `form:"content"`
}
