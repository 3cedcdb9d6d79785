package board

// Kind distinguishes success from failure notifications.
type Kind int

const (
	Success Kind = iota
	Failure
)

func (k Kind) String() string {
	if k == Failure {
		return "error"
	}
	return "success"
}

// Notification messages shown to the user.
const (
	MsgAdded        = "Task has been added."
	MsgUpdated      = "Task updated successfully."
	MsgDeleted      = "Task deleted."
	MsgAddFailed    = "Failed to add task"
	MsgUpdateFailed = "Failed to update task."
	MsgDeleteFailed = "Failed to delete task."
)

// Notification is a transient message for the user.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier receives the outcome of every board mutation.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
