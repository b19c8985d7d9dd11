package models

import "time"

// Request bodies accepted by the HTTP layer. Update requests use pointers so
// omitted fields are distinguishable from zero values (partial-patch
// semantics).

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    string     `json:"priority" validate:"omitempty,priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags" validate:"max=20,dive,max=40"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        *[]string  `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	StartDate   time.Time  `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	AllDay      bool       `json:"allDay"`
	Location    string     `json:"location" validate:"max=200"`
	Color       string     `json:"color" validate:"max=30"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	AllDay      *bool      `json:"allDay,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Color       *string    `json:"color,omitempty" validate:"omitempty,max=30"`
}

type CreateBillRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=200"`
	Amount    float64   `json:"amount" validate:"gte=0"`
	DueDate   time.Time `json:"dueDate" validate:"required"`
	Recurring bool      `json:"recurring"`
	Category  string    `json:"category" validate:"max=60"`
}

type UpdateBillRequest struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Amount    *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Paid      *bool      `json:"paid,omitempty"`
	Recurring *bool      `json:"recurring,omitempty"`
	Category  *string    `json:"category,omitempty" validate:"omitempty,max=60"`
}

type CreateExpenseRequest struct {
	Description string    `json:"description" validate:"required,min=1,max=200"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Category    string    `json:"category" validate:"max=60"`
	Date        time.Time `json:"date" validate:"required"`
}

type UpdateExpenseRequest struct {
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1,max=200"`
	Amount      *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,max=60"`
	Date        *time.Time `json:"date,omitempty"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"max=100000"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=40"`
	Pinned  bool     `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string   `json:"content,omitempty" validate:"omitempty,max=100000"`
	Tags    *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
	Pinned  *bool     `json:"pinned,omitempty"`
}

type CreatePomodoroSessionRequest struct {
	TaskID   string `json:"taskId" validate:"max=64"`
	Mode     string `json:"mode" validate:"required,oneof=work shortBreak longBreak"`
	Duration int    `json:"duration" validate:"gte=1,lte=180"`
}

type UpdatePomodoroSessionRequest struct {
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Duration    *int       `json:"duration,omitempty" validate:"omitempty,gte=1,lte=180"`
}

type UpdateSettingsRequest struct {
	Theme                *string `json:"theme,omitempty" validate:"omitempty,theme"`
	WorkDuration         *int    `json:"workDuration,omitempty" validate:"omitempty,gte=1,lte=180"`
	ShortBreakDuration   *int    `json:"shortBreakDuration,omitempty" validate:"omitempty,gte=1,lte=60"`
	LongBreakDuration    *int    `json:"longBreakDuration,omitempty" validate:"omitempty,gte=1,lte=120"`
	Currency             *string `json:"currency,omitempty" validate:"omitempty,currency"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	Language             *string `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
}

type UpdateNotificationRequest struct {
	Read *bool `json:"read,omitempty"`
}
