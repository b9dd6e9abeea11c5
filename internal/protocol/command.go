// ABOUTME: Inbound command union (init, filter, quit) and its line decoder
// ABOUTME: The method field is the discriminator; params are decoded per variant

package protocol

import (
	"github.com/tidwall/gjson"

	"github.com/mauromedda/nu-plugin-inc-go/internal/value"
)

// Methods understood by the plugin, plus the single outbound method name.
const (
	MethodInit     = "init"
	MethodFilter   = "filter"
	MethodQuit     = "quit"
	MethodResponse = "response"
)

var knownMethods = []string{MethodInit, MethodFilter, MethodQuit}

// Command is one decoded inbound message. The set of implementations is
// closed: InitCommand, FilterCommand and QuitCommand.
type Command interface {
	Method() string
	isCommand()
}

// InitCommand configures the session from an ordered list of values.
type InitCommand struct {
	Params []value.Spanned
}

// FilterCommand carries one stream value to transform.
type FilterCommand struct {
	Params value.Value
}

// QuitCommand asks the plugin to stop.
type QuitCommand struct{}

func (InitCommand) Method() string { return MethodInit }
func (FilterCommand) Method() string { return MethodFilter }
func (QuitCommand) Method() string { return MethodQuit }

func (InitCommand) isCommand() {}
func (FilterCommand) isCommand() {}
func (QuitCommand) isCommand() {}

// DecodeCommand parses one line into a Command. Any failure is a
// *DecodeError. Fields other than method and params are ignored.
func DecodeCommand(line []byte) (Command, error) {
	if !gjson.ValidBytes(line) {
		return nil, &DecodeError{Kind: DecodeMalformed}
	}
	root := gjson.ParseBytes(line)
	if !root.IsObject() {
		return nil, &DecodeError{Kind: DecodeNotObject}
	}

	method := root.Get("method")
	if method.Type != gjson.String {
		return nil, &DecodeError{Kind: DecodeMissingMethod}
	}

	switch method.Str {
	case MethodInit:
		params := root.Get("params")
		if !params.IsArray() {
			return nil, &DecodeError{Kind: DecodeBadParams, Method: method.Str}
		}
		elems := params.Array()
		cmd := InitCommand{Params: make([]value.Spanned, 0, len(elems))}
		for _, elem := range elems {
			cmd.Params = append(cmd.Params, value.SpannedFromResult(elem))
		}
		return cmd, nil

	case MethodFilter:
		params := root.Get("params")
		if !params.Exists() {
			return nil, &DecodeError{Kind: DecodeBadParams, Method: method.Str}
		}
		return FilterCommand{Params: value.FromResult(params)}, nil

	case MethodQuit:
		return QuitCommand{}, nil
	}

	return nil, &DecodeError{
		Kind:       DecodeUnknownMethod,
		Method:     method.Str,
		Suggestion: SuggestMethod(method.Str),
	}
}
