package export

import "encoding/json"

// JSONExporter renders a conversation as indented JSON, matching the
// on-disk session layout so exports can be re-imported by hand.
type JSONExporter struct{}

func (e *JSONExporter) Export(data ExportData) (string, error) {
	b, err := json.MarshalIndent(data.Conversation, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
