package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens estimates the token count of text with the cl100k_base
// encoding. Used for usage logging when the provider reports no totals;
// returns 0 if the encoding is unavailable.
func CountTokens(text string) int {
	encodingOnce.Do(func() {
		encoding, _ = tiktoken.GetEncoding("cl100k_base")
	})
	if encoding == nil {
		return 0
	}
	return len(encoding.Encode(text, nil, nil))
}
