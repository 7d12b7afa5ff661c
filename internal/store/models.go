package store

import (
	"slices"
	"time"
)

type CaseStatus string

const (
	CaseOpen       CaseStatus = "open"
	CaseInProgress CaseStatus = "in-progress"
	CasePending    CaseStatus = "pending"
	CaseClosed     CaseStatus = "closed"
)

// CaseStatuses lists every case status in display order.
func CaseStatuses() []CaseStatus {
	return []CaseStatus{CaseOpen, CaseInProgress, CasePending, CaseClosed}
}

func (s CaseStatus) Valid() bool { return slices.Contains(CaseStatuses(), s) }

type CasePriority string

const (
	CasePriorityLow    CasePriority = "low"
	CasePriorityMedium CasePriority = "medium"
	CasePriorityHigh   CasePriority = "high"
	CasePriorityUrgent CasePriority = "urgent"
)

func CasePriorities() []CasePriority {
	return []CasePriority{CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityUrgent}
}

func (p CasePriority) Valid() bool { return slices.Contains(CasePriorities(), p) }

type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntrySubmitted EntryStatus = "submitted"
	EntryApproved  EntryStatus = "approved"
	EntryInvoiced  EntryStatus = "invoiced"
)

func EntryStatuses() []EntryStatus {
	return []EntryStatus{EntryDraft, EntrySubmitted, EntryApproved, EntryInvoiced}
}

func (s EntryStatus) Valid() bool { return slices.Contains(EntryStatuses(), s) }

// Next returns the following billing stage. Invoiced is terminal.
func (s EntryStatus) Next() EntryStatus {
	switch s {
	case EntryDraft:
		return EntrySubmitted
	case EntrySubmitted:
		return EntryApproved
	case EntryApproved:
		return EntryInvoiced
	}
	return s
}

type DocumentCategory string

const (
	DocContract       DocumentCategory = "contract"
	DocEvidence       DocumentCategory = "evidence"
	DocCorrespondence DocumentCategory = "correspondence"
	DocFiling         DocumentCategory = "filing"
	DocOther          DocumentCategory = "other"
)

func DocumentCategories() []DocumentCategory {
	return []DocumentCategory{DocContract, DocEvidence, DocCorrespondence, DocFiling, DocOther}
}

func (c DocumentCategory) Valid() bool { return slices.Contains(DocumentCategories(), c) }

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskTodo, TaskInProgress, TaskCompleted}
}

func (s TaskStatus) Valid() bool { return slices.Contains(TaskStatuses(), s) }

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func TaskPriorities() []TaskPriority {
	return []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
}

func (p TaskPriority) Valid() bool { return slices.Contains(TaskPriorities(), p) }

type MemberRole string

const (
	RoleAttorney  MemberRole = "attorney"
	RoleParalegal MemberRole = "paralegal"
	RoleAdmin     MemberRole = "admin"
)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   *string   `json:"company,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Case struct {
	ID             string       `json:"id"`
	ClientID       string       `json:"client_id"`
	Title          string       `json:"title"`
	CaseNumber     string       `json:"case_number"`
	Status         CaseStatus   `json:"status"`
	Priority       CasePriority `json:"priority"`
	PracticeArea   string       `json:"practice_area"`
	Description    string       `json:"description"`
	AssignedTo     []string     `json:"assigned_to"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	CourtDate      *time.Time   `json:"court_date,omitempty"`
	EstimatedValue *float64     `json:"estimated_value,omitempty"`
}

type TimeEntry struct {
	ID          string      `json:"id"`
	CaseID      string      `json:"case_id"`
	UserID      string      `json:"user_id"`
	Description string      `json:"description"`
	Hours       float64     `json:"hours"`
	Date        time.Time   `json:"date"`
	Billable    bool        `json:"billable"`
	HourlyRate  *float64    `json:"hourly_rate,omitempty"`
	Status      EntryStatus `json:"status"`
}

type Document struct {
	ID         string           `json:"id"`
	CaseID     string           `json:"case_id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Size       int64            `json:"size"`
	UploadedBy string           `json:"uploaded_by"`
	UploadedAt time.Time        `json:"uploaded_at"`
	URL        string           `json:"url"`
	Category   DocumentCategory `json:"category"`
}

type Task struct {
	ID          string       `json:"id"`
	CaseID      string       `json:"case_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assigned_to"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type CourtDate struct {
	ID           string    `json:"id"`
	CaseID       string    `json:"case_id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Judge        *string   `json:"judge,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	ReminderSent bool      `json:"reminder_sent"`
}

type TeamMember struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       MemberRole `json:"role"`
	HourlyRate *float64   `json:"hourly_rate,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Inputs carry everything the caller supplies on creation. Ids and
// store-assigned timestamps are filled in by the Add* methods.

type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company *string
	Address *string
}

type CaseInput struct {
	ClientID       string
	Title          string
	CaseNumber     string
	Status         CaseStatus
	Priority       CasePriority
	PracticeArea   string
	Description    string
	AssignedTo     []string
	CourtDate      *time.Time
	EstimatedValue *float64
}

type TimeEntryInput struct {
	CaseID      string
	UserID      string
	Description string
	Hours       float64
	Date        time.Time
	Billable    bool
	HourlyRate  *float64
	Status      EntryStatus
}

type DocumentInput struct {
	CaseID     string
	Name       string
	Type       string
	Size       int64
	UploadedBy string
	URL        string
	Category   DocumentCategory
}

type TaskInput struct {
	CaseID      string
	Title       string
	Description string
	AssignedTo  string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

type CourtDateInput struct {
	CaseID   string
	Title    string
	Date     time.Time
	Location string
	Judge    *string
	Notes    *string
}

type NoteInput struct {
	CaseID    string
	Content   string
	CreatedBy string
}

// Patches describe a partial update: nil fields are left untouched.

type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Address *string
}

type CasePatch struct {
	ClientID     *string
	Title        *string
	CaseNumber   *string
	Status       *CaseStatus
	Priority     *CasePriority
	PracticeArea *string
	Description  *string
	// AssignedTo replaces the assignment when non-nil; an empty non-nil
	// slice clears it.
	AssignedTo     []string
	CourtDate      *time.Time
	EstimatedValue *float64
}

type TimeEntryPatch struct {
	CaseID      *string
	UserID      *string
	Description *string
	Hours       *float64
	Date        *time.Time
	Billable    *bool
	HourlyRate  *float64
	Status      *EntryStatus
}

type DocumentPatch struct {
	CaseID     *string
	Name       *string
	Type       *string
	Size       *int64
	UploadedBy *string
	URL        *string
	Category   *DocumentCategory
}

type TaskPatch struct {
	CaseID      *string
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
}

type CourtDatePatch struct {
	CaseID       *string
	Title        *string
	Date         *time.Time
	Location     *string
	Judge        *string
	Notes        *string
	ReminderSent *bool
}

type NotePatch struct {
	CaseID    *string
	Content   *string
	CreatedBy *string
}

// Ptr returns a pointer to v. Handy for optional fields and patches.
func Ptr[T any](v T) *T {
	return &v
}

// clonePtr copies the pointee so stored entities never alias caller memory.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (c Client) clone() Client {
	c.Company = clonePtr(c.Company)
	c.Address = clonePtr(c.Address)
	return c
}

func (c Case) clone() Case {
	c.AssignedTo = slices.Clone(c.AssignedTo)
	c.CourtDate = clonePtr(c.CourtDate)
	c.EstimatedValue = clonePtr(c.EstimatedValue)
	return c
}

func (e TimeEntry) clone() TimeEntry {
	e.HourlyRate = clonePtr(e.HourlyRate)
	return e
}

func (d Document) clone() Document { return d }

func (t Task) clone() Task {
	t.DueDate = clonePtr(t.DueDate)
	return t
}

func (cd CourtDate) clone() CourtDate {
	cd.Judge = clonePtr(cd.Judge)
	cd.Notes = clonePtr(cd.Notes)
	return cd
}

func (m TeamMember) clone() TeamMember {
	m.HourlyRate = clonePtr(m.HourlyRate)
	return m
}

func (n Note) clone() Note { return n }
