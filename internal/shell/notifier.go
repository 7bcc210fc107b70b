package shell

// Notifier shows modal notices to the user. The desktop binding implements
// it with native message dialogs; tests record the calls.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// Dialog titles and messages shown by the controller.
const (
	titleSuccess  = "Success"
	titleError    = "Error"
	titleEmpty    = "Empty"
	titleExported = "Exported"
	titleImported = "Imported"
	titleInvalid  = "Invalid Input"

	msgExported    = "Stock data exported to Excel successfully!"
	msgNoDatabase  = "No database selected. Create or switch to a database first."
	fmtCreated     = "Database '%s' created successfully!"
	fmtSwitched    = "Switched to database '%s'"
	fmtDeleted     = "Database '%s' deleted successfully!"
	fmtMissing     = "Database '%s' does not exist!"
	fmtCSVExported = "Exported %d stocks to %s"
	fmtCSVImported = "Imported %d stocks from %s"
)
