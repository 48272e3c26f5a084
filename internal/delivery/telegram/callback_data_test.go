package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       string
		wantAction string
		wantParams []string
	}{
		{
			name:       "answer with indices",
			data:       buildAnswerCallback(3, 1),
			wantAction: actionAnswer,
			wantParams: []string{"3", "1"},
		},
		{
			name:       "menu action",
			data:       buildMenuCallback(menuReview),
			wantAction: actionMenu,
			wantParams: []string{"review"},
		},
		{
			name:       "bare action",
			data:       "menu",
			wantAction: actionMenu,
			wantParams: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.wantAction, cd.Action)
			assert.Equal(t, tt.wantParams, cd.Params)
			assert.Equal(t, tt.data, cd.Raw)
		})
	}
}

func TestParseAnswerParams(t *testing.T) {
	t.Parallel()

	qIdx, optIdx, err := parseAnswerParams(decodeCallback("ans:2:0"))
	require.NoError(t, err)
	assert.Equal(t, 2, qIdx)
	assert.Equal(t, 0, optIdx)

	_, _, err = parseAnswerParams(decodeCallback("ans:2"))
	assert.Error(t, err)

	_, _, err = parseAnswerParams(decodeCallback("ans:x:0"))
	assert.Error(t, err)
}
