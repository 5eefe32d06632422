package erbscan

import "testing"

func TestScanFragments(t *testing.T) {
	src := "Hello <%= @name %>!<% @count += 1 %><%# a comment %>"
	result := Scan(src)
	if len(result.Fragments) != 5 {
		t.Fatalf("expected 5 fragments, got %d: %+v", len(result.Fragments), result.Fragments)
	}
	if result.Fragments[0].Kind != FragmentLiteralText || result.Fragments[0].Content != "Hello " {
		t.Errorf("fragment 0 = %+v", result.Fragments[0])
	}
	if result.Fragments[1].Kind != FragmentOutput {
		t.Errorf("fragment 1 kind = %v, want FragmentOutput", result.Fragments[1].Kind)
	}
	if result.Fragments[3].Kind != FragmentCode {
		t.Errorf("fragment 3 kind = %v, want FragmentCode", result.Fragments[3].Kind)
	}
	if result.Fragments[4].Kind != FragmentCommentTag {
		t.Errorf("fragment 4 kind = %v, want FragmentCommentTag", result.Fragments[4].Kind)
	}
}

func TestScanVariablesFromOutputAndCodeOnly(t *testing.T) {
	src := "<%# @ignored %>text<%= @shown %><% @used = 1 %>"
	result := Scan(src)
	want := map[string]bool{"shown": true, "used": true}
	if len(result.Variables) != len(want) {
		t.Fatalf("Variables = %v, want keys of %v", result.Variables, want)
	}
	for _, v := range result.Variables {
		if !want[v] {
			t.Errorf("unexpected variable %q collected", v)
		}
	}
}

func TestScanDedupesVariables(t *testing.T) {
	result := Scan("<%= @x %><%= @x %>")
	if len(result.Variables) != 1 {
		t.Errorf("Variables = %v, want exactly one entry", result.Variables)
	}
}

func TestScanQuotedPercentGreaterIgnored(t *testing.T) {
	result := Scan(`<% x = "%>" + "@y" %>`)
	if len(result.Fragments) != 1 || result.Fragments[0].Kind != FragmentCode {
		t.Fatalf("expected a single Code fragment spanning the quoted %%>, got %+v", result.Fragments)
	}
}

func TestHasContent(t *testing.T) {
	if HasContent("   \n\t") {
		t.Errorf("HasContent should be false for all-whitespace input")
	}
	if !HasContent("  x ") {
		t.Errorf("HasContent should be true when non-whitespace text is present")
	}
}
