package tools

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gateway/pkg/domain"
	"gateway/pkg/llm"
)

//go:embed bankinfo.yaml
var defaultBankInfo []byte

const unknownTopicText = "I don't have info on that topic."

// InfoEntry is a single knowledge base answer.
type InfoEntry struct {
	Topic string `yaml:"topic"`
	Text  string `yaml:"text"`
}

// KnowledgeBase holds curated bank facts keyed by topic, in file order.
type KnowledgeBase struct {
	entries []InfoEntry
	byTopic map[string]string
}

// LoadKnowledgeBase reads the YAML knowledge base at path. An empty path
// loads the built-in one.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	if path == "" {
		return ParseKnowledgeBase(defaultBankInfo)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read bank info: %w", err)
	}

	return ParseKnowledgeBase(raw)
}

// ParseKnowledgeBase decodes a YAML list of topic entries.
func ParseKnowledgeBase(raw []byte) (*KnowledgeBase, error) {
	var entries []InfoEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("could not parse bank info: %w", err)
	}

	kb := &KnowledgeBase{byTopic: make(map[string]string, len(entries))}
	for _, e := range entries {
		topic := strings.ToLower(strings.TrimSpace(e.Topic))
		if topic == "" {
			return nil, fmt.Errorf("bank info entry without a topic")
		}
		if _, exists := kb.byTopic[topic]; !exists {
			kb.entries = append(kb.entries, InfoEntry{Topic: topic, Text: e.Text})
		}
		kb.byTopic[topic] = strings.TrimSpace(e.Text)
	}

	return kb, nil
}

// Topics lists the known topics.
func (kb *KnowledgeBase) Topics() []string {
	topics := make([]string, 0, len(kb.entries))
	for _, e := range kb.entries {
		topics = append(topics, e.Topic)
	}

	return topics
}

// Lookup returns the answer for topic, case insensitively.
func (kb *KnowledgeBase) Lookup(topic string) (string, bool) {
	text, ok := kb.byTopic[strings.ToLower(strings.TrimSpace(topic))]

	return text, ok && text != ""
}

type bankInfoTool struct {
	kb *KnowledgeBase
}

// NewBankInfoTool returns get_bank_info backed by kb.
func NewBankInfoTool(kb *KnowledgeBase) Tool {
	return bankInfoTool{kb: kb}
}

func (t bankInfoTool) Definition() llm.Tool {
	return llm.Tool{
		Name:        "get_bank_info",
		Description: "Return info about bank for specific topic",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"enum":        t.kb.Topics(),
					"description": "Identifier of the information that needs to be obtained about the bank.",
				},
			},
			"required": []string{"topic"},
		},
	}
}

func (t bankInfoTool) Execute(_ context.Context, inv Invocation) (Result, error) {
	text, ok := t.kb.Lookup(inv.Args.String("topic"))
	if !ok {
		return Result{Event: domain.EventSend, Data: unknownTopicText}, nil
	}

	return Result{Event: domain.EventSend, Data: text, PostProcess: true}, nil
}
