package domain

// Choice is one selectable option rendered as an inline button
type Choice struct {
	Key   string
	Label string
}

// Reply is the outbound message produced by one engine step
type Reply struct {
	Text    string
	Choices []Choice
}

// TextReply creates a reply without choices
func TextReply(text string) Reply {
	return Reply{Text: text}
}
