package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "reactive error",
			code:    "E006",
			wantMsg: "Subscriber updated while it is still evaluating",
			wantCat: CategoryReactive,
		},
		{
			name:    "render error",
			code:    "E102",
			wantMsg: "Duplicate key in sibling list",
			wantCat: CategoryRender,
		},
		{
			name:    "config error",
			code:    "E120",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRender, "tag %q not supported", "blink")
	if err.Message != `tag "blink" not supported` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryRender {
		t.Errorf("Category = %q, want %q", err.Category, CategoryRender)
	}
}

func TestError_Error(t *testing.T) {
	err := New("E100")
	if got, want := err.Error(), "E100: Unknown node kind"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New("E101").WithDetail(`selector "#modal"`)
	if got, want := err.Error(), `E101: Portal target could not be resolved (selector "#modal")`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestError_IsAndAs(t *testing.T) {
	err := fmt.Errorf("mount: %w", New("E102").WithDetail("dup"))

	if !stderrors.Is(err, New("E102")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E101")) {
		t.Error("errors.Is should not match a different code")
	}
	if Code(err) != "E102" {
		t.Errorf("Code() = %q, want E102", Code(err))
	}
	if Code(stderrors.New("plain")) != "" {
		t.Error("Code() of a plain error should be empty")
	}
}

func TestError_Wrap(t *testing.T) {
	inner := stderrors.New("boom")
	outer := New("E104").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !strings.HasSuffix(outer.Error(), ": boom") {
		t.Errorf("Error() = %q, want wrapped message suffix", outer.Error())
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").WithDetail(`key "a" appears twice`)
	out := err.Format()

	for _, want := range []string{
		"ERROR E102: Duplicate key in sibling list",
		`key "a" appears twice`,
		"Hint: Give every sibling a unique key.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E105").WithDetail("Render(nil)")
	if got, want := err.FormatCompact(), "E105: Render target container is nil - Render(nil)"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, New("E100"))
	if !strings.Contains(buf.String(), "ERROR E100") {
		t.Errorf("Fprint structured = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint plain = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
