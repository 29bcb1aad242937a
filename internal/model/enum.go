package model

// Label categorises a task.
type Label string

const (
	LabelWork     Label = "work"
	LabelPersonal Label = "personal"
	LabelUrgent   Label = "urgent"
)

// Labels lists every accepted label in display order.
var Labels = []Label{LabelWork, LabelPersonal, LabelUrgent}

func (l Label) Valid() bool {
	switch l {
	case LabelWork, LabelPersonal, LabelUrgent:
		return true
	}
	return false
}

// Status is the kanban column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Statuses lists the columns left to right.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}
