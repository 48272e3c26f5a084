package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer = "ans"
	actionMenu   = "menu"
)

// Menu sub-actions.
const (
	menuLevel    = "level"
	menuReview   = "review"
	menuProgress = "progress"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback builds callback data for answering a question: the
// question index guards against stale taps, the option index is the answer.
func buildAnswerCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(optionIndex)},
	}.encode()
}

// buildMenuCallback builds callback data for a main-menu action.
func buildMenuCallback(subAction string) string {
	return callbackData{
		Action: actionMenu,
		Params: []string{subAction},
	}.encode()
}
