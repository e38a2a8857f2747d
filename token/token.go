package token

import "fmt"

type Character rune

const (
	SequenceEntryCharacter Character = '-'
	MappingKeyCharacter    Character = '?'
	MappingValueCharacter  Character = ':'
	CollectEntryCharacter  Character = ','
	SequenceStartCharacter Character = '['
	SequenceEndCharacter   Character = ']'
	MappingStartCharacter  Character = '{'
	MappingEndCharacter    Character = '}'
	CommentCharacter       Character = '#'
	AnchorCharacter        Character = '&'
	AliasCharacter         Character = '*'
	TagCharacter           Character = '!'
	LiteralCharacter       Character = '|'
	FoldedCharacter        Character = '>'
	SingleQuoteCharacter   Character = '\''
	DoubleQuoteCharacter   Character = '"'
	DirectiveCharacter     Character = '%'
	SpaceCharacter         Character = ' '
	TabCharacter           Character = '\t'
	LineBreakCharacter     Character = '\n'
	ByteOrderMarkCharacter Character = '\uFEFF'
)

// Kind tags every token and branch node in the concrete syntax tree.
// Token kinds come first; everything from StreamType on is a branch node.
type Kind int

const (
	UnknownType Kind = iota

	// trivia tokens
	WhitespaceType
	NewlineType
	CommentType
	ByteOrderMarkType

	// indicator tokens
	SequenceEntryType
	MappingKeyType
	MappingValueType
	CollectEntryType
	SequenceStartType
	SequenceEndType
	MappingStartType
	MappingEndType
	DocumentHeaderType
	DocumentEndType
	AnchorType
	AliasType
	DirectiveType

	// text tokens
	PlainTextType
	SingleQuotedType
	DoubleQuotedType
	BlockScalarHeaderType
	BlockScalarBodyType
	TagHandleType
	TagSuffixType
	AnchorNameType
	AliasNameType
	DirectiveNameType
	DirectiveParamType

	// branch nodes
	StreamType
	DocumentType
	PropertiesType
	TagType
	BlockMapType
	BlockMapEntryType
	BlockSeqType
	BlockSeqEntryType
	FlowMapType
	FlowMapEntryType
	FlowSeqType
	FlowSeqEntryType
	ScalarType
	AliasNodeType
	DirectiveNodeType
)

func (k Kind) String() string {
	switch k {
	case UnknownType:
		return "Unknown"
	case WhitespaceType:
		return "Whitespace"
	case NewlineType:
		return "Newline"
	case CommentType:
		return "Comment"
	case ByteOrderMarkType:
		return "ByteOrderMark"
	case SequenceEntryType:
		return "SequenceEntry"
	case MappingKeyType:
		return "MappingKey"
	case MappingValueType:
		return "MappingValue"
	case CollectEntryType:
		return "CollectEntry"
	case SequenceStartType:
		return "SequenceStart"
	case SequenceEndType:
		return "SequenceEnd"
	case MappingStartType:
		return "MappingStart"
	case MappingEndType:
		return "MappingEnd"
	case DocumentHeaderType:
		return "DocumentHeader"
	case DocumentEndType:
		return "DocumentEnd"
	case AnchorType:
		return "Anchor"
	case AliasType:
		return "Alias"
	case DirectiveType:
		return "Directive"
	case PlainTextType:
		return "PlainText"
	case SingleQuotedType:
		return "SingleQuoted"
	case DoubleQuotedType:
		return "DoubleQuoted"
	case BlockScalarHeaderType:
		return "BlockScalarHeader"
	case BlockScalarBodyType:
		return "BlockScalarBody"
	case TagHandleType:
		return "TagHandle"
	case TagSuffixType:
		return "TagSuffix"
	case AnchorNameType:
		return "AnchorName"
	case AliasNameType:
		return "AliasName"
	case DirectiveNameType:
		return "DirectiveName"
	case DirectiveParamType:
		return "DirectiveParam"
	case StreamType:
		return "Stream"
	case DocumentType:
		return "Document"
	case PropertiesType:
		return "Properties"
	case TagType:
		return "Tag"
	case BlockMapType:
		return "BlockMap"
	case BlockMapEntryType:
		return "BlockMapEntry"
	case BlockSeqType:
		return "BlockSeq"
	case BlockSeqEntryType:
		return "BlockSeqEntry"
	case FlowMapType:
		return "FlowMap"
	case FlowMapEntryType:
		return "FlowMapEntry"
	case FlowSeqType:
		return "FlowSeq"
	case FlowSeqEntryType:
		return "FlowSeqEntry"
	case ScalarType:
		return "Scalar"
	case AliasNodeType:
		return "AliasNode"
	case DirectiveNodeType:
		return "DirectiveNode"
	}
	return ""
}

// IsNode reports whether k tags a branch node rather than a token.
func (k Kind) IsNode() bool {
	return k >= StreamType
}

// IsTrivia reports whether k tags whitespace, a line break, a comment or a
// byte order mark.
func (k Kind) IsTrivia() bool {
	switch k {
	case WhitespaceType, NewlineType, CommentType, ByteOrderMarkType:
		return true
	}
	return false
}

// IsEntry reports whether k tags an entry node of a block or flow collection.
func (k Kind) IsEntry() bool {
	switch k {
	case BlockMapEntryType, BlockSeqEntryType, FlowMapEntryType, FlowSeqEntryType:
		return true
	}
	return false
}

// Indicator classifies an indicator character the way the YAML specification
// groups them.
type Indicator int

const (
	NotIndicator            Indicator = iota
	BlockStructureIndicator           // '-', '?', ':'
	FlowCollectionIndicator           // '[', ']', '{', '}', ','
	CommentIndicator                  // '#'
	NodePropertyIndicator             // '!', '&', '*'
	BlockScalarIndicator              // '|', '>'
	QuotedScalarIndicator             // ''', '"'
	DirectiveIndicator                // '%'
	ReservedIndicator                 // '@', '`'
)

func (i Indicator) String() string {
	switch i {
	case NotIndicator:
		return "NotIndicator"
	case BlockStructureIndicator:
		return "BlockStructure"
	case FlowCollectionIndicator:
		return "FlowCollection"
	case CommentIndicator:
		return "Comment"
	case NodePropertyIndicator:
		return "NodeProperty"
	case BlockScalarIndicator:
		return "BlockScalar"
	case QuotedScalarIndicator:
		return "QuotedScalar"
	case DirectiveIndicator:
		return "Directive"
	case ReservedIndicator:
		return "Reserved"
	}
	return ""
}

// IndicatorOf returns the indicator class of r, or NotIndicator.
func IndicatorOf(r rune) Indicator {
	switch r {
	case '-', '?', ':':
		return BlockStructureIndicator
	case '[', ']', '{', '}', ',':
		return FlowCollectionIndicator
	case '#':
		return CommentIndicator
	case '!', '&', '*':
		return NodePropertyIndicator
	case '|', '>':
		return BlockScalarIndicator
	case '\'', '"':
		return QuotedScalarIndicator
	case '%':
		return DirectiveIndicator
	case '@', '`':
		return ReservedIndicator
	}
	return NotIndicator
}

// IsFlowIndicator reports whether r structures flow collections.
func IsFlowIndicator(r rune) bool {
	switch r {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// Position is a source location. Line and Column start from 1; Column counts
// Unicode code points. Offset is a code point offset from the beginning of
// the source.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p *Position) String() string {
	return fmt.Sprintf("[line:%d,column:%d,offset:%d]", p.Line, p.Column, p.Offset)
}
