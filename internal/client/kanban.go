package client

import (
	"context"
	"errors"
	"strings"

	"flowboard/internal/model"
)

var ErrUnknownDropTarget = errors.New("unknown drop target")

// Column is one kanban lane.
type Column struct {
	Status model.Status
	Title  string
	Tasks  []Task
}

var columnTitles = map[model.Status]string{
	model.StatusTodo:       "To Do",
	model.StatusInProgress: "In Progress",
	model.StatusDone:       "Done",
}

var dropTargets = map[string]model.Status{
	"todo":        model.StatusTodo,
	"to do":       model.StatusTodo,
	"inprogress":  model.StatusInProgress,
	"in progress": model.StatusInProgress,
	"done":        model.StatusDone,
}

// StatusForDropTarget maps a lane identifier or lane title to its status.
func StatusForDropTarget(target string) (model.Status, bool) {
	status, ok := dropTargets[strings.ToLower(strings.TrimSpace(target))]
	return status, ok
}

// Columns splits tasks into the three lanes, left to right, keeping their order.
func Columns(tasks []Task) []Column {
	cols := make([]Column, len(model.Statuses))
	index := make(map[model.Status]int, len(model.Statuses))
	for i, s := range model.Statuses {
		cols[i] = Column{Status: s, Title: columnTitles[s], Tasks: []Task{}}
		index[s] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			i = index[model.StatusTodo]
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	return cols
}

// Kanban applies drag-and-drop moves through the API.
type Kanban struct {
	client *Client
}

func NewKanban(c *Client) *Kanban {
	return &Kanban{client: c}
}

// Drop moves a task to the lane named by target with a single status update.
func (k *Kanban) Drop(ctx context.Context, taskID, target string) (*Task, error) {
	status, ok := StatusForDropTarget(target)
	if !ok {
		return nil, ErrUnknownDropTarget
	}
	return k.client.UpdateTask(ctx, taskID, TaskPatch{Status: &status})
}
