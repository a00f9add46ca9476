package svg

import (
	"slices"
	"testing"
)

func TestNewElement(t *testing.T) {
	el := New("svg", A("width", "600"), A("height", "720"))
	if el.Tag != "svg" {
		t.Errorf("expected tag svg, got %q", el.Tag)
	}
	if len(el.Children()) != 0 {
		t.Errorf("expected no children, got %d", len(el.Children()))
	}
	if v, ok := el.Attr("height"); !ok || v != "720" {
		t.Errorf("expected height 720, got %q (present=%v)", v, ok)
	}
}

func TestSetLastWriteWins(t *testing.T) {
	el := New("rect", A("fill", "red"), A("fill", "blue"))
	el.Set("fill", "green")

	if v, _ := el.Attr("fill"); v != "green" {
		t.Errorf("expected fill green, got %q", v)
	}
	if got := el.String(); got != `<rect fill="green"></rect>` {
		t.Errorf("unexpected markup: %s", got)
	}
}

func TestSerializeSortsAttributes(t *testing.T) {
	el := New("g", A("transform", "translate(1,2)"), A("clip-path", "url(#c)"), A("fill", "x"))
	want := `<g clip-path="url(#c)" fill="x" transform="translate(1,2)"></g>`
	if got := el.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if names := el.AttrNames(); !slices.Equal(names, []string{"clip-path", "fill", "transform"}) {
		t.Errorf("unexpected attribute order: %v", names)
	}
}

func TestSerializeNested(t *testing.T) {
	text := New("text", A("x", "0"))
	text.Append(New("tspan", A("dy", "1em")).AppendText("9 AM"))
	text.AppendText(" tail")

	g := New("g").Append(New("line", A("x2", "600")), text)

	want := `<g><line x2="600"></line><text x="0"><tspan dy="1em">9 AM</tspan> tail</text></g>`
	if got := g.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestSerializeEscapes(t *testing.T) {
	el := New("text", A("data-note", `a "quoted" <value>`)).AppendText("R&D <sync>")
	want := `<text data-note="a &quot;quoted&quot; &lt;value&gt;">R&amp;D &lt;sync&gt;</text>`
	if got := el.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestNodeKinds(t *testing.T) {
	leaf := Text("hello")
	if leaf.Kind() != KindText || leaf.TextValue() != "hello" || leaf.Element() != nil {
		t.Errorf("unexpected text node: %+v", leaf)
	}

	el := New("g").Node()
	if el.Kind() != KindElement || el.Element() == nil {
		t.Errorf("unexpected element node: %+v", el)
	}
	if got := leaf.String(); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 0, want: "0"},
		{input: 60, want: "60"},
		{input: 193.33333333333334, want: "193.33333333333334"},
		{input: 22.5, want: "22.5"},
		{input: -10, want: "-10"},
	}

	for _, tt := range tests {
		if got := Num(tt.input); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
