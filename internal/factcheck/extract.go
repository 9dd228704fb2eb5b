package factcheck

import (
	"encoding/json"
	"fmt"
)

type envelopeStep struct {
	diagnostic string
	walk       func(Node) Node
}

// envelopePath walks candidates[0].content.parts[0].text of a generateContent response.
var envelopePath = []envelopeStep{
	{"No candidates returned", func(n Node) Node { return n.Field("candidates").List() }},
	{"First candidate is not an object", func(n Node) Node { return n.Index(0).Object() }},
	{"No content in candidate", func(n Node) Node { return n.Field("content").Object() }},
	{"No parts in content", func(n Node) Node { return n.Field("parts").List() }},
	{"No text in content part", func(n Node) Node { return n.Index(0).Field("text").Str() }},
	{"Empty text returned", func(n Node) Node { return n.NonEmpty() }},
}

// ExtractText returns the text of the first part of the first candidate in a decoded
// response body. Any shape mismatch is reported as an *EnvelopeError naming the step.
func ExtractText(body any) (string, error) {
	n := Root(body)
	for _, step := range envelopePath {
		n = step.walk(n)
		if reason := n.Absent(); reason != nil {
			return "", &EnvelopeError{Step: step.diagnostic, Reason: reason, Raw: rawJSON(body)}
		}
	}
	text, _ := n.Text()
	return text, nil
}

func rawJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
