package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Input formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Metadata describes an ingested job description. Hash identifies the cleaned text so
// repeated runs against the same posting can be correlated in logs.
type Metadata struct {
	Source     string    `json:"source,omitempty"`
	Format     string    `json:"format"`
	IngestedAt time.Time `json:"ingested_at"`
	Hash       string    `json:"hash"`
	Lines      int       `json:"lines"`
	Words      int       `json:"words"`
}

// NewMetadata describes cleaned text read from source
func NewMetadata(content string, source string) *Metadata {
	m := &Metadata{
		Source:     source,
		Format:     FormatText,
		IngestedAt: time.Now().UTC(),
		Hash:       computeHash(content),
		Words:      len(strings.Fields(content)),
	}
	if content != "" {
		m.Lines = strings.Count(content, "\n") + 1
	}
	return m
}

// ShortHash is the first twelve hex digits of Hash
func (m *Metadata) ShortHash() string {
	if len(m.Hash) < 12 {
		return m.Hash
	}
	return m.Hash[:12]
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
