package record

// Column labels of the connections export
const (
	ConnectionsFirstName    = "First Name"
	ConnectionsLastName     = "Last Name"
	ConnectionsURL          = "URL"
	ConnectionsEmailAddress = "Email Address"
	ConnectionsCompany      = "Company"
	ConnectionsPosition     = "Position"
	ConnectionsConnectedOn  = "Connected On"
)

// ConnectionsFields are the labels read from the connections export
var ConnectionsFields = []string{
	ConnectionsFirstName,
	ConnectionsLastName,
	ConnectionsURL,
	ConnectionsEmailAddress,
	ConnectionsCompany,
	ConnectionsPosition,
	ConnectionsConnectedOn,
}

// Column labels of the messages export
const (
	MessagesConversationID      = "CONVERSATION ID"
	MessagesConversationTitle   = "CONVERSATION TITLE"
	MessagesFrom                = "FROM"
	MessagesSenderProfileURL    = "SENDER PROFILE URL"
	MessagesTo                  = "TO"
	MessagesRecipientProfileURL = "RECIPIENT PROFILE URLS"
	MessagesDate                = "DATE"
	MessagesSubject             = "SUBJECT"
	MessagesContent             = "CONTENT"
	MessagesFolder              = "FOLDER"
)

// MessagesFields are the labels read from the messages export
var MessagesFields = []string{
	MessagesConversationID,
	MessagesConversationTitle,
	MessagesFrom,
	MessagesSenderProfileURL,
	MessagesTo,
	MessagesRecipientProfileURL,
	MessagesDate,
	MessagesSubject,
	MessagesContent,
	MessagesFolder,
}

// PlaceholderBodies are system generated messages that are never kept
var PlaceholderBodies = []string{
	"Message request accepted",
	"A LinkedIn member left the conversation.",
}
