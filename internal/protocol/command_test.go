// ABOUTME: Tests for command decoding and the fuzzy method suggestion
// ABOUTME: Covers each variant, params shapes and every decode failure kind

package protocol

import (
	"errors"
	"testing"

	"github.com/mauromedda/nu-plugin-inc-go/internal/value"
)

func TestDecodeInit(t *testing.T) {
	t.Parallel()

	cmd, err := DecodeCommand([]byte(`{"method":"init","params":[5,{"item":{"Primitive":{"Int":7}},"span":{"start":1,"end":2}},"x"]}`))
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	ic, ok := cmd.(InitCommand)
	if !ok {
		t.Fatalf("cmd = %T; want InitCommand", cmd)
	}
	if len(ic.Params) != 3 {
		t.Fatalf("len(Params) = %d; want 3", len(ic.Params))
	}
	if !ic.Params[0].Item.Equal(value.Int(5)) {
		t.Errorf("Params[0] = %v; want 5", ic.Params[0].Item)
	}
	if !ic.Params[1].Item.Equal(value.Int(7)) || ic.Params[1].Span == nil {
		t.Errorf("Params[1] = %+v; want spanned 7", ic.Params[1])
	}
	if ic.Params[2].Item.Kind() != value.KindOther {
		t.Errorf("Params[2] kind = %s; want other", ic.Params[2].Item.Kind())
	}
	if cmd.Method() != MethodInit {
		t.Errorf("Method() = %q", cmd.Method())
	}
}

func TestDecodeInitEmpty(t *testing.T) {
	t.Parallel()

	cmd, err := DecodeCommand([]byte(`{"method":"init","params":[]}`))
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	if ic := cmd.(InitCommand); len(ic.Params) != 0 {
		t.Errorf("Params = %v; want empty", ic.Params)
	}
}

func TestDecodeFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want value.Value
	}{
		{`{"method":"filter","params":3}`, value.Int(3)},
		{`{"method":"filter","params":{"Primitive":{"Bytes":10}}}`, bytesOf(10)},
		{`{"params":"s","method":"filter"}`, value.Other(`"s"`)},
		{`{"method":"filter","params":null}`, value.Other(`null`)},
	}
	for _, tt := range tests {
		tt := tt
		cmd, err := DecodeCommand([]byte(tt.line))
		if err != nil {
			t.Fatalf("DecodeCommand(%s): %v", tt.line, err)
		}
		filter, ok := cmd.(FilterCommand)
		if !ok {
			t.Fatalf("cmd = %T; want FilterCommand", cmd)
		}
		if !filter.Params.Equal(tt.want) {
			t.Errorf("DecodeCommand(%s).Params = %v; want %v", tt.line, filter.Params, tt.want)
		}
	}
}

func TestDecodeQuit(t *testing.T) {
	t.Parallel()

	for _, line := range []string{`{"method":"quit"}`, ` {"method":"quit","params":[1]} `} {
		cmd, err := DecodeCommand([]byte(line))
		if err != nil {
			t.Fatalf("DecodeCommand(%s): %v", line, err)
		}
		if _, ok := cmd.(QuitCommand); !ok {
			t.Errorf("cmd = %T; want QuitCommand", cmd)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		kind DecodeKind
	}{
		{"empty", ``, DecodeMalformed},
		{"garbage", `not json`, DecodeMalformed},
		{"truncated", `{"method":"init"`, DecodeMalformed},
		{"array", `[1,2]`, DecodeNotObject},
		{"number", `42`, DecodeNotObject},
		{"no method", `{"params":[]}`, DecodeMissingMethod},
		{"method not string", `{"method":7}`, DecodeMissingMethod},
		{"unknown", `{"method":"sink"}`, DecodeUnknownMethod},
		{"init params missing", `{"method":"init"}`, DecodeBadParams},
		{"init params scalar", `{"method":"init","params":5}`, DecodeBadParams},
		{"filter params missing", `{"method":"filter"}`, DecodeBadParams},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd, err := DecodeCommand([]byte(tt.line))
			if err == nil {
				t.Fatalf("DecodeCommand(%s) = %#v; want error", tt.line, cmd)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("err = %v; want it to match ErrDecode", err)
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("err = %T; want *DecodeError", err)
			}
			if decErr.Kind != tt.kind {
				t.Errorf("Kind = %s; want %s", decErr.Kind, tt.kind)
			}
		})
	}
}

func TestDecodeUnknownMethodSuggestion(t *testing.T) {
	t.Parallel()

	_, err := DecodeCommand([]byte(`{"method":"filt","params":1}`))
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v; want *DecodeError", err)
	}
	if decErr.Method != "filt" {
		t.Errorf("Method = %q; want filt", decErr.Method)
	}
	if decErr.Suggestion != MethodFilter {
		t.Errorf("Suggestion = %q; want %q", decErr.Suggestion, MethodFilter)
	}
}

func TestSuggestMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Init", MethodInit},
		{"q", MethodQuit},
		{"xyz", ""},
	}
	for _, tt := range tests {
		tt := tt
		if got := SuggestMethod(tt.in); got != tt.want {
			t.Errorf("SuggestMethod(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeKindString(t *testing.T) {
	t.Parallel()

	if DecodeMalformed.String() != "malformed json" {
		t.Errorf("DecodeMalformed = %q", DecodeMalformed.String())
	}
	if DecodeKind(99).String() != "decode kind 99" {
		t.Errorf("DecodeKind(99) = %q", DecodeKind(99).String())
	}
}
