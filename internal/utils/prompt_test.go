package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		u := &InputUtils{In: strings.NewReader(tt.input), Out: &out}
		assert.Equal(t, tt.want, u.AskConfirmation("Truncate?", tt.force), "input %q", tt.input)
		if !tt.force {
			assert.Equal(t, "Truncate? (y/N): ", out.String())
		}
	}
}
