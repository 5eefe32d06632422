package lexer

import "testing"

func TestConsumeLiteralAdvancesLineColumn(t *testing.T) {
	c := New("foo\nbar")
	if !c.ConsumeLiteral("foo\n") {
		t.Fatalf("expected to consume 'foo\\n'")
	}
	if c.Line != 2 || c.Column != 1 {
		t.Errorf("got line=%d column=%d, want line=2 column=1", c.Line, c.Column)
	}
	if !c.HasPrefix("bar") {
		t.Errorf("expected remaining input to start with 'bar', got %q", c.Rest())
	}
}

func TestMarkReset(t *testing.T) {
	c := New("hello world")
	m := c.Mark()
	c.Advance(6)
	if c.Offset != 6 {
		t.Fatalf("expected offset 6, got %d", c.Offset)
	}
	c.Reset(m)
	if c.Offset != 0 {
		t.Errorf("expected Reset to restore offset 0, got %d", c.Offset)
	}
}

func TestSkipSpaceCollectsComments(t *testing.T) {
	c := New("   # hello\n  rest")
	comments := SkipSpace(c)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].Text != " hello" {
		t.Errorf("comment text = %q, want %q", comments[0].Text, " hello")
	}
	if !c.HasPrefix("rest") {
		t.Errorf("expected cursor positioned at 'rest', got %q", c.Rest())
	}
}

func TestSpacedWordRejectsLongerIdentifier(t *testing.T) {
	c := New("classic")
	if SpacedWord(c, "class") {
		t.Errorf("SpacedWord should not match 'class' as a prefix of 'classic'")
	}
	if c.Offset != 0 {
		t.Errorf("expected no input consumed on failed match, offset = %d", c.Offset)
	}
}

func TestNamespacedIdent(t *testing.T) {
	c := New("::foo::bar baz")
	segments, isToplevel, ok := NamespacedIdent(c)
	if !ok {
		t.Fatalf("expected NamespacedIdent to succeed")
	}
	if !isToplevel {
		t.Errorf("expected isToplevel=true for leading '::'")
	}
	want := []string{"foo", "bar"}
	if len(segments) != len(want) || segments[0] != want[0] || segments[1] != want[1] {
		t.Errorf("segments = %v, want %v", segments, want)
	}
}

func TestFloatFallsBackToInteger(t *testing.T) {
	c := New("42")
	if _, ok := Float(c); ok {
		t.Fatalf("Float should not match a bare integer")
	}
	if c.Offset != 0 {
		t.Errorf("Float must not consume input on failure, offset = %d", c.Offset)
	}
	s, ok := Integer(c)
	if !ok || s != "42" {
		t.Errorf("Integer() = %q, %v, want \"42\", true", s, ok)
	}
}
