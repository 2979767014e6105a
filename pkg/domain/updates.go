package domain

// Update keys with dedicated merge semantics. Any other key is stored as-is
// under the conversation metadata.
const (
	UpdateKeyLanguage = "language"
	UpdateKeySlots    = "slots"
	UpdateKeyMetadata = "metadata"
)

// Updates is a set of changes to apply to a Conversation, produced by tools
// and by the orchestrator.
type Updates map[string]any

// MergeUpdates flattens several update sets into one. Nested "slots" and
// "metadata" maps are merged key by key; every other key is last-writer-wins.
func MergeUpdates(list ...Updates) Updates {
	merged := Updates{}
	for _, updates := range list {
		for key, value := range updates {
			nested, isMap := value.(map[string]any)
			if isMap && (key == UpdateKeySlots || key == UpdateKeyMetadata) {
				dst, _ := merged[key].(map[string]any)
				if dst == nil {
					dst = map[string]any{}
					merged[key] = dst
				}
				for k, v := range nested {
					dst[k] = v
				}

				continue
			}
			merged[key] = value
		}
	}

	return merged
}
