package discord

import "strconv"

// These are partial structs.
// See https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object

// Interaction types.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Interaction response types.
const (
	ResponsePong                     = 1
	ResponseChannelMessageWithSource = 4
)

type Interaction struct {
	Type   int         `json:"type"`
	Member *Member     `json:"member,omitempty"`
	Data   CommandData `json:"data"`
}

type Member struct {
	User User   `json:"user"`
	Nick string `json:"nick,omitempty"`
}

type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

type CommandData struct {
	Name     string    `json:"name"`
	Resolved *Resolved `json:"resolved,omitempty"`
	Options  []Option  `json:"options"`
}

type Resolved struct {
	// Keyed by the attachment's decimal id as it appears in option values.
	Attachments map[string]Attachment `json:"attachments"`
}

type Attachment struct {
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Option is one node of a command's argument tree: a leaf carries a value,
// a subcommand or group carries child options.
type Option struct {
	Name    string   `json:"name"`
	Value   any      `json:"value,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// StringValue returns the option value if it is a string leaf.
func (o Option) StringValue() (string, bool) {
	s, ok := o.Value.(string)
	return s, ok
}

// AttachmentKey canonicalizes the option value into the decimal key used by
// the resolved-attachments map. The wire value may be a JSON number or a
// string; both must resolve the same entry.
func (o Option) AttachmentKey() (string, bool) {
	switch v := o.Value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	default:
		return "", false
	}
}

// Find returns the first child option with the given name.
func (o Option) Find(name string) (Option, bool) {
	for _, child := range o.Options {
		if child.Name == name {
			return child, true
		}
	}
	return Option{}, false
}

// Username returns the invoking user's display name, if known.
func (in *Interaction) Username() string {
	if in.Member == nil {
		return ""
	}
	return in.Member.User.Username
}

// UserID returns the invoking user's id, if known.
func (in *Interaction) UserID() string {
	if in.Member == nil {
		return ""
	}
	return in.Member.User.ID
}

// Response is the JSON body returned to the chat platform.
type Response struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

type ResponseData struct {
	Content string `json:"content"`
}

// Pong acknowledges a ping interaction.
func Pong() Response {
	return Response{Type: ResponsePong}
}

// Message builds a channel-message reply with the given content.
func Message(content string) Response {
	return Response{
		Type: ResponseChannelMessageWithSource,
		Data: &ResponseData{Content: content},
	}
}
