package emit

import "github.com/commschamp/dslgen/internal/ir"

// MessageData is the template context for one message's generated struct.
type MessageData struct {
	Package string
	Name    string
	ID      int64
	Sender  string
	Fields  []FieldData
}

// BuildMessageData converts a resolved message into its template context.
func BuildMessageData(pkg string, m *ir.Message) MessageData {
	d := MessageData{Package: pkg, Name: goName(m.Name), ID: m.ID, Sender: senderName(m.Sender)}

	for _, f := range m.Fields {
		d.Fields = append(d.Fields, BuildFieldData(f))
	}

	return d
}

func senderName(s ir.Sender) string {
	switch s {
	case ir.SenderClient:
		return "client"
	case ir.SenderServer:
		return "server"
	default:
		return "both"
	}
}
