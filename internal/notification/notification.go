package notification

// MessageSender represents an interface for sending messages
type MessageSender interface {
	PostMessage(channelID, message string) error
}

// ResultsBroadcaster represents an interface for pushing live results to viewers
type ResultsBroadcaster interface {
	Broadcast(message []byte)
}
