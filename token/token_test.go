package token_test

import (
	"testing"

	"github.com/g-plane/pretty-yaml/token"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.WhitespaceType, "Whitespace"},
		{token.NewlineType, "Newline"},
		{token.CommentType, "Comment"},
		{token.SequenceEntryType, "SequenceEntry"},
		{token.MappingValueType, "MappingValue"},
		{token.BlockScalarHeaderType, "BlockScalarHeader"},
		{token.StreamType, "Stream"},
		{token.BlockMapEntryType, "BlockMapEntry"},
		{token.FlowSeqType, "FlowSeq"},
		{token.ScalarType, "Scalar"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	if !token.WhitespaceType.IsTrivia() || !token.CommentType.IsTrivia() {
		t.Error("whitespace and comments are trivia")
	}
	if token.PlainTextType.IsTrivia() {
		t.Error("plain text is not trivia")
	}
	if token.PlainTextType.IsNode() || token.MappingValueType.IsNode() {
		t.Error("tokens are not nodes")
	}
	if !token.BlockMapType.IsNode() || !token.StreamType.IsNode() {
		t.Error("branch kinds are nodes")
	}
	if !token.BlockSeqEntryType.IsEntry() || !token.FlowMapEntryType.IsEntry() {
		t.Error("entry kinds must report IsEntry")
	}
	if token.BlockMapType.IsEntry() {
		t.Error("a collection is not an entry")
	}
}

func TestIndicatorOf(t *testing.T) {
	tests := []struct {
		r    rune
		want token.Indicator
	}{
		{'-', token.BlockStructureIndicator},
		{':', token.BlockStructureIndicator},
		{'[', token.FlowCollectionIndicator},
		{'#', token.CommentIndicator},
		{'&', token.NodePropertyIndicator},
		{'|', token.BlockScalarIndicator},
		{'"', token.QuotedScalarIndicator},
		{'%', token.DirectiveIndicator},
		{'@', token.ReservedIndicator},
		{'x', token.NotIndicator},
	}
	for _, tt := range tests {
		if got := token.IndicatorOf(tt.r); got != tt.want {
			t.Errorf("IndicatorOf(%q) = %s, expected %s", tt.r, got, tt.want)
		}
	}
}

func TestIsFlowIndicator(t *testing.T) {
	for _, r := range ",[]{}" {
		if !token.IsFlowIndicator(r) {
			t.Errorf("expected %q to be a flow indicator", r)
		}
	}
	for _, r := range "-?:#x" {
		if token.IsFlowIndicator(r) {
			t.Errorf("%q is not a flow indicator", r)
		}
	}
}
